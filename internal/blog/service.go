// Package blog resolves blog posts from the Markdown content store: locale
// file sets, slugs, required metadata, dates and rendered HTML.
package blog

import (
	"context"
	"sort"
	"time"

	"github.com/dianliyang/portfolio/internal/i18n"
	"github.com/dianliyang/portfolio/internal/logging"
	"github.com/dianliyang/portfolio/internal/markdown"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

const dateLayout = "2006-01-02"

// Source is the part of the Markdown service the resolver reads through.
type Source interface {
	Files(ctx context.Context, locale string) (markdown.FileSet, error)
	Load(ctx context.Context, path, locale string) (*interfaces.Document, error)
	Render(ctx context.Context, body []byte) ([]byte, error)
}

// Config controls locale handling and slug collision policy.
type Config struct {
	I18N i18n.Config
	// StrictSlugs turns two files resolving to one slug into ErrDuplicateSlug.
	// Otherwise the first file in enumeration order wins.
	StrictSlugs bool
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used by the resolver.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service implements interfaces.PostService.
type Service struct {
	source Source
	cfg    Config
	logger interfaces.Logger
}

var _ interfaces.PostService = (*Service)(nil)

// NewService constructs a resolver over source.
func NewService(source Source, cfg Config, opts ...Option) *Service {
	s := &Service{
		source: source,
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// entry is a parsed source file paired with the slug it resolves to.
type entry struct {
	slug string
	doc  *interfaces.Document
}

// ListSlugs returns one slug per file of the locale's effective set, in
// enumeration order.
func (s *Service) ListSlugs(ctx context.Context, locale string) ([]string, error) {
	resolved, err := s.resolveLocale(locale)
	if err != nil {
		return nil, err
	}

	entries, err := s.scan(ctx, resolved)
	if err != nil {
		return nil, err
	}
	if s.cfg.StrictSlugs {
		if err := checkDuplicates(entries); err != nil {
			return nil, err
		}
	}

	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		slugs = append(slugs, e.slug)
	}
	return slugs, nil
}

// GetPost resolves the first file whose slug equals slug. The slug is
// checked before the content store is touched.
func (s *Service) GetPost(ctx context.Context, slug, locale string) (*interfaces.Post, error) {
	if !validRequestSlug(slug) {
		return nil, invalidSlugError(slug)
	}

	resolved, err := s.resolveLocale(locale)
	if err != nil {
		return nil, err
	}

	entries, err := s.scan(ctx, resolved)
	if err != nil {
		return nil, err
	}

	var match *entry
	for i := range entries {
		if entries[i].slug != slug {
			continue
		}
		if match == nil {
			match = &entries[i]
			if !s.cfg.StrictSlugs {
				break
			}
			continue
		}
		return nil, duplicateSlugError(slug, match.doc.FilePath, entries[i].doc.FilePath)
	}
	if match == nil {
		return nil, notFoundError(slug, resolved.Code)
	}

	post, err := s.buildPost(ctx, *match, resolved)
	if err != nil {
		return nil, err
	}
	logging.WithPostContext(s.logger, resolved.Code, slug).Debug("blog.post.resolved", "path", post.SourcePath)
	return post, nil
}

// ListAllPosts resolves every post of the locale, newest first by creation
// date. Posts sharing a creation date keep enumeration order. Any invalid
// file fails the whole call.
func (s *Service) ListAllPosts(ctx context.Context, locale string) ([]*interfaces.Post, error) {
	resolved, err := s.resolveLocale(locale)
	if err != nil {
		return nil, err
	}

	entries, err := s.scan(ctx, resolved)
	if err != nil {
		return nil, err
	}

	posts := make([]*interfaces.Post, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if first, ok := seen[e.slug]; ok {
			if s.cfg.StrictSlugs {
				return nil, duplicateSlugError(e.slug, first, e.doc.FilePath)
			}
			logging.WithPostContext(s.logger, resolved.Code, e.slug).
				Warn("blog.slug.duplicate", "kept", first, "skipped", e.doc.FilePath)
			continue
		}
		seen[e.slug] = e.doc.FilePath

		post, err := s.buildPost(ctx, e, resolved)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts, nil
}

func (s *Service) resolveLocale(locale string) (i18n.Locale, error) {
	resolved, err := s.cfg.I18N.Resolve(locale)
	if err != nil {
		return i18n.Locale{}, invalidLocaleError(err, locale)
	}
	return resolved, nil
}

func (s *Service) scan(ctx context.Context, locale i18n.Locale) ([]entry, error) {
	set, err := s.source.Files(ctx, locale.Code)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(set.Files))
	for _, path := range set.Files {
		doc, err := s.source.Load(ctx, path, locale.Code)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{slug: slugFor(doc.FrontMatter), doc: doc})
	}
	return entries, nil
}

func (s *Service) buildPost(ctx context.Context, e entry, locale i18n.Locale) (*interfaces.Post, error) {
	fm := e.doc.FrontMatter

	var missing []string
	if fm.Title == "" {
		missing = append(missing, "title")
	}
	if fm.Excerpt == "" {
		missing = append(missing, "excerpt")
	}
	if len(missing) > 0 {
		return nil, missingFieldsError(e.slug, e.doc.FilePath, missing)
	}

	title, excerpt, body := fm.Title, fm.Excerpt, e.doc.Body
	if locale.CJK() {
		title = SpaceCJK(title)
		excerpt = SpaceCJK(excerpt)
		body = []byte(SpaceCJK(string(body)))
	}

	html, err := s.source.Render(ctx, body)
	if err != nil {
		return nil, err
	}

	return &interfaces.Post{
		Slug:       e.slug,
		Title:      title,
		Excerpt:    excerpt,
		Content:    string(html),
		CreatedAt:  formatDate(e.doc.CreatedAt),
		UpdatedAt:  resolveUpdatedAt(fm.UpdatedAt, e.doc.LastModified),
		Locale:     locale.Code,
		SourcePath: e.doc.FilePath,
	}, nil
}

// slugFor prefers the explicit slug so translations can share one slug
// while their titles differ.
func slugFor(fm interfaces.FrontMatter) string {
	if fm.Slug != "" {
		return Slugify(fm.Slug)
	}
	return Slugify(fm.Title)
}

func checkDuplicates(entries []entry) error {
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if first, ok := seen[e.slug]; ok {
			return duplicateSlugError(e.slug, first, e.doc.FilePath)
		}
		seen[e.slug] = e.doc.FilePath
	}
	return nil
}

// resolveUpdatedAt normalises an explicit override to a calendar date when
// it parses as one and keeps it verbatim otherwise. Without an override the
// modification date is used.
func resolveUpdatedAt(raw string, modified time.Time) string {
	if raw == "" {
		return formatDate(modified)
	}
	if _, err := time.Parse(dateLayout, raw); err == nil {
		return raw
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return formatDate(ts)
	}
	return raw
}

func formatDate(ts time.Time) string {
	return ts.UTC().Format(dateLayout)
}
