package blogcmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/dianliyang/portfolio/internal/i18n"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

type stubPostService struct {
	posts map[string][]*interfaces.Post
	errs  map[string]error
	calls []string
}

func (s *stubPostService) ListSlugs(ctx context.Context, locale string) ([]string, error) {
	var slugs []string
	for _, post := range s.posts[locale] {
		slugs = append(slugs, post.Slug)
	}
	return slugs, nil
}

func (s *stubPostService) GetPost(ctx context.Context, slug, locale string) (*interfaces.Post, error) {
	for _, post := range s.posts[locale] {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *stubPostService) ListAllPosts(ctx context.Context, locale string) ([]*interfaces.Post, error) {
	s.calls = append(s.calls, locale)
	if err := s.errs[locale]; err != nil {
		return nil, err
	}
	return s.posts[locale], nil
}

func sitePosts() *stubPostService {
	return &stubPostService{
		posts: map[string][]*interfaces.Post{
			"en": {
				{Slug: "hello-world", Title: "Hello World", Excerpt: "Hi.", Content: "<p>Hi</p>\n", CreatedAt: "2025-02-01", UpdatedAt: "2025-02-02", Locale: "en", SourcePath: "en/hello.md"},
				{Slug: "aps-guide", Title: "APS Guide", Excerpt: "Docs.", Content: "<p>Docs</p>\n", CreatedAt: "2025-01-01", UpdatedAt: "2025-01-01", Locale: "en", SourcePath: "en/aps.md"},
			},
			"zh": {
				{Slug: "aps-guide", Title: "准备 APS 材料", Excerpt: "准备繁琐的 APS 材料。", Content: "<p>准备</p>\n", CreatedAt: "2025-01-03", UpdatedAt: "2025-01-04", Locale: "zh", SourcePath: "zh/aps.md"},
				{Slug: "", Title: "随笔", Excerpt: "无标题。", Content: "<p>随笔</p>\n", CreatedAt: "2025-01-02", UpdatedAt: "2025-01-02", Locale: "zh", SourcePath: "zh/notes.md"},
			},
		},
	}
}

func localeConfig() i18n.Config {
	return i18n.FromModuleConfig("en", []string{"en", "zh"}, "/blog")
}

func readJSON(t *testing.T, path string, target any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}

func TestExportPostsHandlerWritesLocaleTrees(t *testing.T) {
	out := t.TempDir()
	service := sitePosts()

	var result ExportResult
	handler := NewExportPostsHandler(service, localeConfig(), nil, FeatureGates{}, func(r ExportResult) { result = r })

	if err := handler.Execute(context.Background(), ExportPostsCommand{OutputDir: out, Indent: true}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(service.calls) != 2 || service.calls[0] != "en" || service.calls[1] != "zh" {
		t.Fatalf("expected every configured locale to be exported, got %v", service.calls)
	}
	if len(result.Locales) != 2 || result.Locales[0].Posts != 2 || result.Locales[1].Posts != 1 {
		t.Fatalf("unexpected result %#v", result)
	}
	if len(result.Locales[1].Skipped) != 1 || result.Locales[1].Skipped[0] != "zh/notes.md" {
		t.Fatalf("expected slug-less post to be skipped, got %v", result.Locales[1].Skipped)
	}

	var index struct {
		Locale     string                   `json:"locale"`
		Path       string                   `json:"path"`
		Alternates map[string]string        `json:"alternates"`
		Posts      []interfaces.PostSummary `json:"posts"`
	}
	readJSON(t, filepath.Join(out, "en", "index.json"), &index)
	if index.Path != "/blog" || index.Alternates["zh"] != "/zh/blog" {
		t.Fatalf("unexpected index paths: %#v", index)
	}
	if len(index.Posts) != 2 || index.Posts[0].Slug != "hello-world" {
		t.Fatalf("expected listing order to be kept, got %#v", index.Posts)
	}

	var post map[string]any
	readJSON(t, filepath.Join(out, "zh", "aps-guide.json"), &post)
	if post["title"] != "准备 APS 材料" || post["path"] != "/zh/blog/aps-guide" {
		t.Fatalf("unexpected post document: %v", post)
	}
	alternates, _ := post["alternates"].(map[string]any)
	if alternates["en"] != "/blog/aps-guide" {
		t.Fatalf("unexpected alternates: %v", alternates)
	}
	if _, ok := post["SourcePath"]; ok {
		t.Fatal("expected source path to stay out of the export")
	}
}

func TestExportPostsHandlerRestrictsLocales(t *testing.T) {
	out := t.TempDir()
	service := sitePosts()
	handler := NewExportPostsHandler(service, localeConfig(), nil, FeatureGates{}, nil)

	if err := handler.Execute(context.Background(), ExportPostsCommand{OutputDir: out, Locales: []string{"zh-Hans"}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "zh", "index.json")); err != nil {
		t.Fatalf("expected zh index to be written under the configured code: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "en")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected en to be skipped, got %v", err)
	}
}

func TestExportPostsHandlerRemovesFilesOfVanishedPosts(t *testing.T) {
	out := t.TempDir()
	service := &stubPostService{posts: map[string][]*interfaces.Post{
		"en": {{Slug: "old-title", Title: "Old Title", Excerpt: "Before.", CreatedAt: "2025-01-01", UpdatedAt: "2025-01-01", Locale: "en"}},
	}}
	var result ExportResult
	handler := NewExportPostsHandler(service, localeConfig(), nil, FeatureGates{}, func(r ExportResult) { result = r })
	msg := ExportPostsCommand{OutputDir: out, Locales: []string{"en"}}

	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("first export: %v", err)
	}
	notes := filepath.Join(out, "en", "notes.txt")
	if err := os.WriteFile(notes, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	service.posts["en"] = []*interfaces.Post{
		{Slug: "new-title", Title: "New Title", Excerpt: "After.", CreatedAt: "2025-01-01", UpdatedAt: "2025-01-02", Locale: "en"},
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("second export: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "en", "old-title.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected old-title.json to be removed, got %v", err)
	}
	for _, name := range []string{"new-title.json", "index.json", "notes.txt"} {
		if _, err := os.Stat(filepath.Join(out, "en", name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}
	if len(result.Locales) != 1 || len(result.Locales[0].Removed) != 1 || result.Locales[0].Removed[0] != "old-title.json" {
		t.Fatalf("expected removal to be reported, got %#v", result.Locales)
	}
}

func TestExportPostsHandlerSkipsAliasesOfSameLocale(t *testing.T) {
	out := t.TempDir()
	service := sitePosts()
	var result ExportResult
	handler := NewExportPostsHandler(service, localeConfig(), nil, FeatureGates{}, func(r ExportResult) { result = r })

	if err := handler.Execute(context.Background(), ExportPostsCommand{OutputDir: out, Locales: []string{"zh", "zh-Hans"}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(service.calls) != 1 || service.calls[0] != "zh" {
		t.Fatalf("expected zh to be resolved once, got %v", service.calls)
	}
	if len(result.Locales) != 1 || result.Locales[0].Locale != "zh" {
		t.Fatalf("expected a single zh entry, got %#v", result.Locales)
	}
}

func TestExportPostsHandlerWritesNothingOnFailure(t *testing.T) {
	out := t.TempDir()
	service := sitePosts()
	failure := goerrors.Wrap(errors.New("missing excerpt"), goerrors.CategoryValidation, "post is invalid")
	service.errs = map[string]error{"zh": failure}

	handler := NewExportPostsHandler(service, localeConfig(), nil, FeatureGates{}, nil)
	err := handler.Execute(context.Background(), ExportPostsCommand{OutputDir: out})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error to pass through, got %v", err)
	}

	entries, readErr := os.ReadDir(out)
	if readErr != nil {
		t.Fatalf("read output dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files to be written, found %d entries", len(entries))
	}
}

func TestExportPostsHandlerValidatesMessage(t *testing.T) {
	service := sitePosts()
	handler := NewExportPostsHandler(service, localeConfig(), nil, FeatureGates{}, nil)

	err := handler.Execute(context.Background(), ExportPostsCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.calls) != 0 {
		t.Fatalf("expected service not to be called, got %v", service.calls)
	}
}

func TestHandlersHonourFeatureGate(t *testing.T) {
	gates := FeatureGates{CommandsEnabled: func() bool { return false }}
	service := sitePosts()

	export := NewExportPostsHandler(service, localeConfig(), nil, gates, nil)
	if err := export.Execute(context.Background(), ExportPostsCommand{OutputDir: t.TempDir()}); !errors.Is(err, ErrCommandsDisabled) {
		t.Fatalf("expected ErrCommandsDisabled, got %v", err)
	}

	check := NewCheckContentHandler(service, localeConfig(), nil, gates)
	if err := check.Execute(context.Background(), CheckContentCommand{}); !errors.Is(err, ErrCommandsDisabled) {
		t.Fatalf("expected ErrCommandsDisabled, got %v", err)
	}
}

func TestCheckContentHandler(t *testing.T) {
	service := sitePosts()
	handler := NewCheckContentHandler(service, localeConfig(), nil, FeatureGates{})

	if err := handler.Execute(context.Background(), CheckContentCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(service.calls) != 2 {
		t.Fatalf("expected both locales to be checked, got %v", service.calls)
	}

	service.errs = map[string]error{"en": goerrors.Wrap(errors.New("dup"), goerrors.CategoryConflict, "duplicate slug")}
	err := handler.Execute(context.Background(), CheckContentCommand{Locales: []string{"en"}})
	if !goerrors.IsCategory(err, goerrors.CategoryConflict) {
		t.Fatalf("expected conflict category, got %v", err)
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterBlogCommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterBlogCommands(reg, sitePosts(), localeConfig(), nil, FeatureGates{})
	if err != nil {
		t.Fatalf("RegisterBlogCommands: %v", err)
	}
	if set.Export == nil || set.Check == nil {
		t.Fatal("expected both handlers to be built")
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected two registrations, got %d", len(reg.handlers))
	}

	if _, err := RegisterBlogCommands(nil, nil, localeConfig(), nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for nil post service")
	}

	failing := &recordingRegistry{err: errors.New("registry closed")}
	if _, err := RegisterBlogCommands(failing, sitePosts(), localeConfig(), nil, FeatureGates{}); err == nil {
		t.Fatal("expected registry error to propagate")
	}
}
