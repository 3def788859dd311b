package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dianliyang/portfolio/internal/logging"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

// Config controls how the Markdown service discovers and parses files.
type Config struct {
	// BasePath is the content store root. It is ignored when WithFS is used.
	BasePath      string
	DefaultLocale string
	Pattern       string
	Parser        interfaces.ParseOptions
}

// ServiceOption customises a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	fs     fs.FS
	times  FileTimes
	logger interfaces.Logger
}

// WithFS reads the content store from fsys instead of BasePath.
func WithFS(fsys fs.FS) ServiceOption {
	return func(o *serviceOptions) {
		o.fs = fsys
	}
}

// WithFileTimes overrides how creation and modification times are read.
func WithFileTimes(times FileTimes) ServiceOption {
	return func(o *serviceOptions) {
		o.times = times
	}
}

// WithLogger sets the logger used for discovery diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// Service reads blog sources from a filesystem-backed content store.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
	logger interfaces.Logger
}

// NewService constructs a Markdown service. When parser is nil a goldmark
// parser with cfg.Parser defaults is used.
func NewService(cfg Config, parser interfaces.MarkdownParser, opts ...ServiceOption) (*Service, error) {
	options := serviceOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	filesystem := options.fs
	times := options.times
	if filesystem == nil {
		prepared, err := prepareFilesystem(cfg.BasePath)
		if err != nil {
			return nil, err
		}
		filesystem = prepared
		if times == nil {
			times = OSFileTimes{Root: cfg.BasePath}
		}
	}

	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	logger := options.logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: NewLoader(filesystem, LoaderConfig{
			DefaultLocale: cfg.DefaultLocale,
			Pattern:       cfg.Pattern,
			Times:         times,
		}),
		logger: logger,
	}, nil
}

// Files returns the effective file set for locale.
func (s *Service) Files(ctx context.Context, locale string) (FileSet, error) {
	set, err := s.loader.EffectiveFiles(ctx, locale)
	if err != nil {
		return FileSet{}, err
	}

	logger := logging.WithMarkdownContext(s.logger, set.Dir, locale)
	if set.Legacy {
		logger.Debug("markdown.files.legacy_fallback", "count", len(set.Files))
	} else {
		logger.Debug("markdown.files.resolved", "count", len(set.Files))
	}
	return set, nil
}

// Load reads and parses a single document without rendering its body.
func (s *Service) Load(ctx context.Context, path, locale string) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, path, locale)
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.ParseWithOptions(markdown, s.cfg.Parser)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown service: base path %s is not a directory", basePath)
	}
	return os.DirFS(basePath), nil
}
