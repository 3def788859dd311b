package blogcmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dianliyang/portfolio/internal/i18n"
	"github.com/dianliyang/portfolio/internal/logging"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

const indexFile = "index.json"

// LocaleExport reports what was written for one locale.
type LocaleExport struct {
	Locale  string
	Dir     string
	Posts   int
	Skipped []string
	// Removed lists JSON files left by earlier exports whose post no
	// longer resolves.
	Removed []string
}

// ExportResult reports a completed export.
type ExportResult struct {
	OutputDir string
	Locales   []LocaleExport
}

// indexDocument is the listing written to <locale>/index.json.
type indexDocument struct {
	Locale     string                   `json:"locale"`
	Path       string                   `json:"path"`
	Alternates map[string]string        `json:"alternates"`
	Posts      []interfaces.PostSummary `json:"posts"`
}

// postDocument is a single post written to <locale>/<slug>.json.
type postDocument struct {
	*interfaces.Post
	Path       string            `json:"path"`
	Alternates map[string]string `json:"alternates"`
}

type localePosts struct {
	code  string
	posts []*interfaces.Post
}

// Exporter writes resolved posts to disk as JSON.
type Exporter struct {
	posts  interfaces.PostService
	i18n   i18n.Config
	logger interfaces.Logger
}

// NewExporter binds an exporter to a post service and the locale layout used
// to build public paths.
func NewExporter(posts interfaces.PostService, cfg i18n.Config, logger interfaces.Logger) *Exporter {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Exporter{posts: posts, i18n: cfg, logger: logger}
}

// Export resolves every requested locale before writing anything, so a
// single invalid post leaves the output directory untouched.
func (e *Exporter) Export(ctx context.Context, msg ExportPostsCommand) (ExportResult, error) {
	locales := msg.Locales
	if len(locales) == 0 {
		locales = e.i18n.Locales
	}

	resolved := make([]localePosts, 0, len(locales))
	seen := make(map[string]struct{}, len(locales))
	for _, requested := range locales {
		locale, err := e.i18n.Resolve(requested)
		if err != nil {
			return ExportResult{}, err
		}
		if _, dup := seen[locale.Code]; dup {
			continue
		}
		seen[locale.Code] = struct{}{}

		posts, err := e.posts.ListAllPosts(ctx, locale.Code)
		if err != nil {
			return ExportResult{}, err
		}
		resolved = append(resolved, localePosts{code: locale.Code, posts: posts})
	}

	result := ExportResult{OutputDir: msg.OutputDir}
	for _, lp := range resolved {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		written, err := e.writeLocale(msg, lp)
		if err != nil {
			return result, err
		}
		result.Locales = append(result.Locales, written)
	}
	return result, nil
}

func (e *Exporter) writeLocale(msg ExportPostsCommand, lp localePosts) (LocaleExport, error) {
	dir := filepath.Join(msg.OutputDir, lp.code)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return LocaleExport{}, fmt.Errorf("blog export: create %s: %w", dir, err)
	}

	out := LocaleExport{Locale: lp.code, Dir: dir}
	index := indexDocument{
		Locale:     lp.code,
		Path:       e.i18n.IndexPath(lp.code, ""),
		Alternates: e.i18n.Alternates(""),
		Posts:      make([]interfaces.PostSummary, 0, len(lp.posts)),
	}

	written := map[string]struct{}{indexFile: {}}
	for _, post := range lp.posts {
		// Titles made only of non-Latin characters slugify to nothing and
		// have no addressable file name.
		if post.Slug == "" {
			logging.WithPostContext(e.logger, lp.code, "").
				Warn("blog.export.empty_slug", "path", post.SourcePath)
			out.Skipped = append(out.Skipped, post.SourcePath)
			continue
		}
		doc := postDocument{
			Post:       post,
			Path:       e.i18n.IndexPath(lp.code, post.Slug),
			Alternates: e.i18n.Alternates(post.Slug),
		}
		name := post.Slug + ".json"
		if err := writeJSON(filepath.Join(dir, name), doc, msg.Indent); err != nil {
			return out, err
		}
		written[name] = struct{}{}
		index.Posts = append(index.Posts, post.Summary())
		out.Posts++
	}

	if err := writeJSON(filepath.Join(dir, indexFile), index, msg.Indent); err != nil {
		return out, err
	}

	removed, err := pruneStale(dir, written)
	out.Removed = removed
	for _, name := range removed {
		e.logger.Debug("blog.export.stale_removed", "locale", lp.code, "file", name)
	}
	return out, err
}

// pruneStale deletes *.json files in dir that the current export did not
// write. Other files and sub-directories are left alone.
func pruneStale(dir string, written map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("blog export: read %s: %w", dir, err)
	}
	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		if _, ok := written[name]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, fmt.Errorf("blog export: remove %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

func writeJSON(path string, value any, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return fmt.Errorf("blog export: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("blog export: write %s: %w", path, err)
	}
	return nil
}
