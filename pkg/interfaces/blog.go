package interfaces

import "context"

// Post is a fully resolved blog entry ready for presentation layers.
type Post struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	// Content is the rendered HTML body.
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Locale    string `json:"locale"`
	// SourcePath is the file the post was resolved from, relative to the
	// content root.
	SourcePath string `json:"-"`
}

// PostSummary is the listing projection of a Post.
type PostSummary struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Summary projects the post into its listing form.
func (p *Post) Summary() PostSummary {
	if p == nil {
		return PostSummary{}
	}
	return PostSummary{
		Slug:      p.Slug,
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PostService resolves blog posts from the content store. Every call reads
// the store afresh; implementations keep no cache.
type PostService interface {
	ListSlugs(ctx context.Context, locale string) ([]string, error)
	GetPost(ctx context.Context, slug, locale string) (*Post, error)
	ListAllPosts(ctx context.Context, locale string) ([]*Post, error)
}
