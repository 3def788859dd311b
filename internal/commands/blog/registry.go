package blogcmd

import (
	"errors"

	"github.com/dianliyang/portfolio/internal/commands"
	"github.com/dianliyang/portfolio/internal/i18n"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract used when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterBlogCommands.
type HandlerSet struct {
	Export *ExportPostsHandler
	Check  *CheckContentHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	observer          ExportObserver
	exportHandlerOpts []commands.HandlerOption[ExportPostsCommand]
	checkHandlerOpts  []commands.HandlerOption[CheckContentCommand]
}

// WithExportObserver receives every successful export result.
func WithExportObserver(observer ExportObserver) Option {
	return func(cfg *options) {
		cfg.observer = observer
	}
}

// WithExportHandlerOptions forwards options to the ExportPostsHandler constructor.
func WithExportHandlerOptions(opts ...commands.HandlerOption[ExportPostsCommand]) Option {
	return func(cfg *options) {
		cfg.exportHandlerOpts = append(cfg.exportHandlerOpts, opts...)
	}
}

// WithCheckHandlerOptions forwards options to the CheckContentHandler constructor.
func WithCheckHandlerOptions(opts ...commands.HandlerOption[CheckContentCommand]) Option {
	return func(cfg *options) {
		cfg.checkHandlerOpts = append(cfg.checkHandlerOpts, opts...)
	}
}

// RegisterBlogCommands builds the blog command handlers and registers them
// with reg when it is not nil.
func RegisterBlogCommands(reg CommandRegistry, posts interfaces.PostService, cfg i18n.Config, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if posts == nil {
		return nil, errors.New("blog command registration: post service is nil")
	}

	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	logger := commands.CommandLogger(provider, "blog")
	set := &HandlerSet{
		Export: NewExportPostsHandler(posts, cfg, logger, gates, o.observer, o.exportHandlerOpts...),
		Check:  NewCheckContentHandler(posts, cfg, logger, gates, o.checkHandlerOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Export); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Check); err != nil {
			return nil, err
		}
	}
	return set, nil
}
