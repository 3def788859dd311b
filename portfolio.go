// Package portfolio resolves the localized Markdown blog of the portfolio
// site into post records ready for presentation.
package portfolio

import (
	"github.com/dianliyang/portfolio/internal/blog"
	blogcmd "github.com/dianliyang/portfolio/internal/commands/blog"
	"github.com/dianliyang/portfolio/internal/di"
	"github.com/dianliyang/portfolio/internal/i18n"
	"github.com/dianliyang/portfolio/internal/logging"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

// PostService exports the resolver contract.
type PostService = interfaces.PostService

// Post exports the resolved post record.
type Post = interfaces.Post

// PostSummary exports the listing projection of a post.
type PostSummary = interfaces.PostSummary

// LocaleConfig exports the resolved locale layout.
type LocaleConfig = i18n.Config

// Option customises module construction.
type Option = di.Option

// BlogCommands exports the command handler set.
type BlogCommands = blogcmd.HandlerSet

// Command messages accepted by BlogCommands.
type (
	ExportPostsCommand  = blogcmd.ExportPostsCommand
	CheckContentCommand = blogcmd.CheckContentCommand
	ExportResult        = blogcmd.ExportResult
)

var (
	WithLoggerProvider  = di.WithLoggerProvider
	WithContentFS       = di.WithContentFS
	WithFileTimes       = di.WithFileTimes
	WithMarkdownParser  = di.WithMarkdownParser
	WithPostService     = di.WithPostService
	WithCommandRegistry = di.WithCommandRegistry
	WithExportObserver  = di.WithExportObserver
)

// Resolver errors, matched with errors.Is or KindOf.
var (
	ErrInvalidSlug   = blog.ErrInvalidSlug
	ErrNotFound      = blog.ErrNotFound
	ErrMissingFields = blog.ErrMissingFields
	ErrDuplicateSlug = blog.ErrDuplicateSlug
	ErrInvalidLocale = blog.ErrInvalidLocale
)

// ErrorKind classifies resolver failures.
type ErrorKind = blog.Kind

const (
	KindNone          = blog.KindNone
	KindInvalidSlug   = blog.KindInvalidSlug
	KindNotFound      = blog.KindNotFound
	KindMissingFields = blog.KindMissingFields
	KindDuplicateSlug = blog.KindDuplicateSlug
	KindInvalidLocale = blog.KindInvalidLocale
	KindOther         = blog.KindOther
)

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	return blog.KindOf(err)
}

// Slugify derives the URL slug of a title.
func Slugify(title string) string {
	return blog.Slugify(title)
}

// Module is the top level blog runtime.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration the module was built from.
func (m *Module) Config() Config {
	if m == nil || m.container == nil {
		return Config{}
	}
	return m.container.Config
}

// Posts returns the post resolver.
func (m *Module) Posts() PostService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.PostService()
}

// Locales returns the configured locale layout.
func (m *Module) Locales() LocaleConfig {
	if m == nil || m.container == nil {
		return LocaleConfig{}
	}
	return m.container.Locales()
}

// Commands returns the blog command handlers, or nil unless
// Features.Commands is set.
func (m *Module) Commands() *BlogCommands {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.BlogCommands()
}

// Logger returns the named logger of the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	if m == nil || m.container == nil {
		return logging.NoOp()
	}
	return logging.ModuleLogger(m.container.LoggerProvider(), module)
}
