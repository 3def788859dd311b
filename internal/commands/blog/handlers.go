package blogcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/dianliyang/portfolio/internal/commands"
	"github.com/dianliyang/portfolio/internal/i18n"
	"github.com/dianliyang/portfolio/internal/logging"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

const (
	exportOperation = "blog.export_posts"
	checkOperation  = "blog.check_content"
)

// ErrCommandsDisabled is returned when the commands feature flag is off.
var ErrCommandsDisabled = errors.New("blog command: commands feature disabled")

var (
	_ command.Commander[ExportPostsCommand]  = (*ExportPostsHandler)(nil)
	_ command.Commander[CheckContentCommand] = (*CheckContentHandler)(nil)
)

// ExportObserver receives the result of a successful export.
type ExportObserver func(ExportResult)

// ExportPostsHandler runs ExportPostsCommand through the shared handler.
type ExportPostsHandler struct {
	inner *commands.Handler[ExportPostsCommand]
}

// NewExportPostsHandler creates a handler bound to the post service.
func NewExportPostsHandler(posts interfaces.PostService, cfg i18n.Config, logger interfaces.Logger, gates FeatureGates, observer ExportObserver, opts ...commands.HandlerOption[ExportPostsCommand]) *ExportPostsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}
	exporter := NewExporter(posts, cfg, baseLogger)

	exec := func(ctx context.Context, msg ExportPostsCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsDisabled
		}

		result, err := exporter.Export(ctx, msg)
		if err != nil {
			return err
		}

		total := 0
		for _, locale := range result.Locales {
			total += locale.Posts
		}
		logging.WithFields(baseLogger, map[string]any{
			"output_dir":   result.OutputDir,
			"locale_count": len(result.Locales),
			"post_count":   total,
		}).Info("blog.command.export_posts.completed")

		if observer != nil {
			observer(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportPostsCommand]{
		commands.WithLogger[ExportPostsCommand](baseLogger),
		commands.WithOperation[ExportPostsCommand](exportOperation),
		commands.WithMessageFields(func(msg ExportPostsCommand) map[string]any {
			fields := map[string]any{"output_dir": msg.OutputDir}
			if len(msg.Locales) > 0 {
				fields["locales"] = msg.Locales
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportPostsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ExportPostsCommand].
func (h *ExportPostsHandler) Execute(ctx context.Context, msg ExportPostsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CheckContentHandler runs CheckContentCommand through the shared handler.
type CheckContentHandler struct {
	inner *commands.Handler[CheckContentCommand]
}

// NewCheckContentHandler creates a handler bound to the post service.
func NewCheckContentHandler(posts interfaces.PostService, cfg i18n.Config, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CheckContentCommand]) *CheckContentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CheckContentCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsDisabled
		}

		locales := msg.Locales
		if len(locales) == 0 {
			locales = cfg.Locales
		}
		for _, locale := range locales {
			resolved, err := posts.ListAllPosts(ctx, locale)
			if err != nil {
				return err
			}
			logging.WithPostContext(baseLogger, locale, "").
				Info("blog.command.check_content.locale", "post_count", len(resolved))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckContentCommand]{
		commands.WithLogger[CheckContentCommand](baseLogger),
		commands.WithOperation[CheckContentCommand](checkOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckContentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CheckContentCommand].
func (h *CheckContentHandler) Execute(ctx context.Context, msg CheckContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
