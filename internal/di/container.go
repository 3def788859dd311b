// Package di wires the blog runtime: logger provider, content store,
// post resolver and command handlers.
package di

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dianliyang/portfolio/internal/blog"
	blogcmd "github.com/dianliyang/portfolio/internal/commands/blog"
	"github.com/dianliyang/portfolio/internal/i18n"
	"github.com/dianliyang/portfolio/internal/logging"
	"github.com/dianliyang/portfolio/internal/logging/console"
	"github.com/dianliyang/portfolio/internal/logging/gologger"
	"github.com/dianliyang/portfolio/internal/markdown"
	"github.com/dianliyang/portfolio/internal/runtimeconfig"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

// ErrMarkdownExtensionUnknown marks a parser extension name goldmark is not
// configured with.
var ErrMarkdownExtensionUnknown = errors.New("portfolio config: markdown extension is unknown")

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithContentFS reads the content store from fsys instead of Content.Dir.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithFileTimes overrides how file creation and modification times are read.
func WithFileTimes(times markdown.FileTimes) Option {
	return func(c *Container) {
		c.fileTimes = times
	}
}

// WithMarkdownParser replaces the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithPostService replaces the filesystem-backed resolver.
func WithPostService(svc interfaces.PostService) Option {
	return func(c *Container) {
		c.postService = svc
	}
}

// WithCommandRegistry registers blog command handlers with reg when the
// commands feature is enabled.
func WithCommandRegistry(reg blogcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// WithExportObserver receives every successful export result.
func WithExportObserver(observer blogcmd.ExportObserver) Option {
	return func(c *Container) {
		c.exportObserver = observer
	}
}

// Container holds the configured services.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider  interfaces.LoggerProvider
	contentFS       fs.FS
	fileTimes       markdown.FileTimes
	parser          interfaces.MarkdownParser
	commandRegistry blogcmd.CommandRegistry
	exportObserver  blogcmd.ExportObserver

	locales         i18n.Config
	markdownService *markdown.Service
	postService     interfaces.PostService
	blogCommands    *blogcmd.HandlerSet
}

// NewContainer validates cfg and builds every service it enables.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	for _, name := range cfg.Markdown.Parser.Extensions {
		if !markdown.KnownExtension(name) {
			return nil, fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
		}
	}

	c.locales = i18n.FromModuleConfig(cfg.DefaultLocale, cfg.I18N.Locales, cfg.I18N.BasePath)

	if c.postService == nil {
		if err := c.configurePostService(); err != nil {
			return nil, err
		}
	}

	if cfg.Features.Commands {
		set, err := blogcmd.RegisterBlogCommands(c.commandRegistry, c.postService, c.locales, c.loggerProvider,
			blogcmd.FeatureGates{CommandsEnabled: func() bool { return c.Config.Features.Commands }},
			blogcmd.WithExportObserver(c.exportObserver),
		)
		if err != nil {
			return nil, fmt.Errorf("register blog commands: %w", err)
		}
		c.blogCommands = set
	}

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configurePostService() error {
	cfg := c.Config

	mdOpts := []markdown.ServiceOption{
		markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)),
	}
	if c.contentFS != nil {
		mdOpts = append(mdOpts, markdown.WithFS(c.contentFS))
	}
	if c.fileTimes != nil {
		mdOpts = append(mdOpts, markdown.WithFileTimes(c.fileTimes))
	}

	source, err := markdown.NewService(markdown.Config{
		BasePath:      cfg.Content.Dir,
		DefaultLocale: c.locales.DefaultLocale,
		Pattern:       cfg.Content.Pattern,
		Parser: interfaces.ParseOptions{
			Extensions: cfg.Markdown.Parser.Extensions,
			Sanitize:   cfg.Markdown.Parser.Sanitize,
			HardWraps:  cfg.Markdown.Parser.HardWraps,
			SafeMode:   cfg.Markdown.Parser.SafeMode,
		},
	}, c.parser, mdOpts...)
	if err != nil {
		return err
	}

	c.markdownService = source
	c.postService = blog.NewService(source, blog.Config{
		I18N:        c.locales,
		StrictSlugs: cfg.Content.StrictSlugs,
	}, blog.WithLogger(logging.BlogLogger(c.loggerProvider)))
	return nil
}

// LoggerProvider returns the configured provider, or nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// PostService returns the post resolver.
func (c *Container) PostService() interfaces.PostService {
	return c.postService
}

// MarkdownService returns the content store reader. It is nil when the
// post service was injected.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownService
}

// Locales returns the locale layout used for resolution and public paths.
func (c *Container) Locales() i18n.Config {
	return c.locales
}

// BlogCommands returns the command handlers, or nil when commands are off.
func (c *Container) BlogCommands() *blogcmd.HandlerSet {
	return c.blogCommands
}
