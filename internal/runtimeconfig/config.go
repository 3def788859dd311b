package runtimeconfig

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrContentDirRequired = errors.New("portfolio config: content directory is required")
var ErrContentPatternInvalid = errors.New("portfolio config: content pattern is invalid")

// ErrDefaultLocaleRequired indicates a configuration without a default locale.
var ErrDefaultLocaleRequired = errors.New("portfolio config: default locale is required")

// ErrDefaultLocaleNotConfigured keeps the default locale inside the locale list
// when one is given explicitly.
var ErrDefaultLocaleNotConfigured = errors.New("portfolio config: default locale must be listed in i18n locales")
var ErrLoggingProviderRequired = errors.New("portfolio config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("portfolio config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("portfolio config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("portfolio config: logging format is invalid")

// Config aggregates the content store, locale and logging settings of the
// portfolio blog module.
type Config struct {
	DefaultLocale string         `yaml:"default_locale"`
	I18N          I18NConfig     `yaml:"i18n"`
	Content       ContentConfig  `yaml:"content"`
	Markdown      MarkdownConfig `yaml:"markdown"`
	Features      Features       `yaml:"features"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// I18NConfig lists the locales content is organised by. BasePath is the
// public path of the default locale's blog index.
type I18NConfig struct {
	Locales  []string `yaml:"locales"`
	BasePath string   `yaml:"base_path"`
}

// ContentConfig points at the on-disk content store.
type ContentConfig struct {
	Dir         string `yaml:"dir"`
	Pattern     string `yaml:"pattern"`
	StrictSlugs bool   `yaml:"strict_slugs"`
}

// MarkdownConfig captures parser behaviour.
type MarkdownConfig struct {
	Parser MarkdownParserConfig `yaml:"parser"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// Features toggles module functionality.
type Features struct {
	Logger   bool `yaml:"logger"`
	Commands bool `yaml:"commands"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the layout the portfolio site ships with.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		I18N: I18NConfig{
			Locales:  []string{"en", "zh"},
			BasePath: "/blog",
		},
		Content: ContentConfig{
			Dir:     "content/blog",
			Pattern: "*.md",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if pattern := strings.TrimSpace(cfg.Content.Pattern); pattern != "" {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: %s", ErrContentPatternInvalid, pattern)
		}
	}
	defaultLocale := strings.TrimSpace(cfg.DefaultLocale)
	if defaultLocale == "" {
		return ErrDefaultLocaleRequired
	}
	if len(cfg.I18N.Locales) > 0 && !containsFold(cfg.I18N.Locales, defaultLocale) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleNotConfigured, defaultLocale)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
