package di

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/dianliyang/portfolio/internal/logging/console"
	"github.com/dianliyang/portfolio/internal/logging/gologger"
	"github.com/dianliyang/portfolio/internal/markdown"
	"github.com/dianliyang/portfolio/internal/runtimeconfig"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

func fixedTimes(fs.FS, string) (markdown.Timestamps, error) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return markdown.Timestamps{Created: ts, Modified: ts}, nil
}

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"en/hello.md": {Data: []byte("---\ntitle: Hello World\nexcerpt: First words.\n---\n\nHello.\n")},
		"zh/hello.md": {Data: []byte("---\ntitle: 你好\nexcerpt: 第一篇。\nslug: hello-world\n---\n\n你好World。\n")},
	}
}

func TestNewContainerBuildsPostService(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := NewContainer(cfg, WithContentFS(contentFS()), WithFileTimes(markdown.FileTimesFunc(fixedTimes)))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.MarkdownService() == nil {
		t.Fatal("expected markdown service to be configured")
	}

	post, err := container.PostService().GetPost(context.Background(), "hello-world", "zh")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Content != "<p>你好 World。</p>\n" {
		t.Fatalf("unexpected content %q", post.Content)
	}
	if container.BlogCommands() != nil {
		t.Fatal("expected no command handlers when commands are disabled")
	}
	if container.LoggerProvider() != nil {
		t.Fatal("expected no logger provider when logging is disabled")
	}
}

func TestNewContainerValidatesConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = ""

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestNewContainerRejectsUnknownExtension(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Parser.Extensions = []string{"gfm", "mermaid"}

	_, err := NewContainer(cfg, WithContentFS(contentFS()))
	if !errors.Is(err, ErrMarkdownExtensionUnknown) {
		t.Fatalf("expected ErrMarkdownExtensionUnknown, got %v", err)
	}
}

func TestNewContainerMissingContentDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = t.TempDir() + "/missing"

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected error for missing content directory")
	}
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg, WithContentFS(contentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.LoggerProvider().(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
	if provider.GetLogger("portfolio.test") == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderDefaultsToConsole(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true

	container, err := NewContainer(cfg, WithContentFS(contentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected console provider")
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); ok {
		t.Fatal("expected console provider, got go-logger")
	}
}

type stubProvider struct{ names []string }

func (p *stubProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return console.NewProvider(console.Options{}).GetLogger(name)
}

func TestWithLoggerProviderOverridesConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	provider := &stubProvider{}

	container, err := NewContainer(cfg, WithContentFS(contentFS()), WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() != provider {
		t.Fatalf("expected injected provider, got %T", container.LoggerProvider())
	}
	if len(provider.names) == 0 {
		t.Fatal("expected services to request module loggers")
	}
}

type recordingRegistry struct{ handlers []any }

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestCommandsFeatureRegistersHandlers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Commands = true
	reg := &recordingRegistry{}

	container, err := NewContainer(cfg, WithContentFS(contentFS()), WithCommandRegistry(reg))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.BlogCommands() == nil || container.BlogCommands().Export == nil {
		t.Fatal("expected blog command handlers")
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected two registered handlers, got %d", len(reg.handlers))
	}
}

type fixedPosts struct{}

func (fixedPosts) ListSlugs(context.Context, string) ([]string, error) { return []string{"x"}, nil }
func (fixedPosts) GetPost(context.Context, string, string) (*interfaces.Post, error) {
	return &interfaces.Post{Slug: "x"}, nil
}
func (fixedPosts) ListAllPosts(context.Context, string) ([]*interfaces.Post, error) { return nil, nil }

func TestWithPostServiceSkipsContentStore(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = "does/not/exist"

	container, err := NewContainer(cfg, WithPostService(fixedPosts{}))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.MarkdownService() != nil {
		t.Fatal("expected content store to be skipped")
	}
	slugs, _ := container.PostService().ListSlugs(context.Background(), "en")
	if len(slugs) != 1 || slugs[0] != "x" {
		t.Fatalf("unexpected slugs %v", slugs)
	}
}
