package logging

import (
	"context"
	"strings"

	"github.com/dianliyang/portfolio/pkg/interfaces"
)

const (
	rootModule     = "portfolio"
	blogModule     = "portfolio.blog"
	markdownModule = "portfolio.markdown"
	commandsModule = "portfolio.commands"
)

const (
	fieldContentPath = "content_path"
	fieldLocale      = "locale"
	fieldSlug        = "slug"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// BlogLogger returns the logger namespace reserved for post resolution.
func BlogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, blogModule)
}

// MarkdownLogger returns the logger namespace reserved for content store reads.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithMarkdownContext adds the content path and locale. Empty values are ignored.
func WithMarkdownContext(logger interfaces.Logger, path, locale string) interfaces.Logger {
	return WithFields(logger, nonEmpty(map[string]string{
		fieldContentPath: path,
		fieldLocale:      locale,
	}))
}

// WithPostContext adds the locale and slug of the post being resolved.
func WithPostContext(logger interfaces.Logger, locale, slug string) interfaces.Logger {
	return WithFields(logger, nonEmpty(map[string]string{
		fieldLocale: locale,
		fieldSlug:   slug,
	}))
}

func nonEmpty(values map[string]string) map[string]any {
	fields := map[string]any{}
	for key, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			fields[key] = trimmed
		}
	}
	return fields
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
