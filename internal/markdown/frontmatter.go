package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/dianliyang/portfolio/pkg/interfaces"
)

const dateLayout = "2006-01-02"

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. Sources without a header yield empty metadata and
// the whole input as body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles a Document from a file path, locale, raw content
// and file timestamps. The body is left unrendered.
func BuildDocument(path, locale string, source []byte, stamps Timestamps) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		Locale:       locale,
		FrontMatter:  fm,
		Body:         body,
		CreatedAt:    stamps.Created,
		LastModified: stamps.Modified,
	}, nil
}

// frontMatterEnvelope decodes the header. updatedAt stays untyped because
// authors write both YAML dates and free-form strings.
type frontMatterEnvelope struct {
	Title     string         `yaml:"title"`
	Excerpt   string         `yaml:"excerpt"`
	Slug      string         `yaml:"slug"`
	UpdatedAt any            `yaml:"updatedAt"`
	Custom    map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	raw := make(map[string]any, len(env.Custom)+4)
	for key, value := range env.Custom {
		raw[key] = value
	}

	updated := stringifyDate(env.UpdatedAt)

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Excerpt != "" {
		raw["excerpt"] = env.Excerpt
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if updated != "" {
		raw["updatedAt"] = updated
	}

	return interfaces.FrontMatter{
		Title:     env.Title,
		Excerpt:   env.Excerpt,
		Slug:      strings.TrimSpace(env.Slug),
		UpdatedAt: updated,
		Raw:       raw,
	}
}

func stringifyDate(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format(dateLayout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.UTC().Format(dateLayout)
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
