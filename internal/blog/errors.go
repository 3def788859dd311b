package blog

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/dianliyang/portfolio/internal/i18n"
)

var (
	// ErrInvalidSlug marks a requested slug containing a path separator or dot.
	ErrInvalidSlug = errors.New("blog: invalid slug")
	// ErrNotFound marks a slug that no file in the locale resolves to.
	ErrNotFound = errors.New("blog: post not found")
	// ErrMissingFields marks a matched file without a title or excerpt.
	ErrMissingFields = errors.New("blog: missing required frontmatter fields")
	// ErrDuplicateSlug marks two files resolving to the same slug in strict mode.
	ErrDuplicateSlug = errors.New("blog: duplicate slug")
	// ErrInvalidLocale marks a locale identifier that is not a language tag.
	ErrInvalidLocale = i18n.ErrInvalidLocale
)

const (
	textCodeInvalidSlug   = "BLOG_INVALID_SLUG"
	textCodeNotFound      = "BLOG_POST_NOT_FOUND"
	textCodeMissingFields = "BLOG_MISSING_FIELDS"
	textCodeDuplicateSlug = "BLOG_DUPLICATE_SLUG"
	textCodeInvalidLocale = "BLOG_INVALID_LOCALE"
)

// Kind enumerates resolver failures so callers can switch on the outcome
// instead of matching messages.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidSlug
	KindNotFound
	KindMissingFields
	KindDuplicateSlug
	KindInvalidLocale
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidSlug:
		return "invalid_slug"
	case KindNotFound:
		return "not_found"
	case KindMissingFields:
		return "missing_fields"
	case KindDuplicateSlug:
		return "duplicate_slug"
	case KindInvalidLocale:
		return "invalid_locale"
	default:
		return "other"
	}
}

// KindOf classifies err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidSlug):
		return KindInvalidSlug
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrMissingFields):
		return KindMissingFields
	case errors.Is(err, ErrDuplicateSlug):
		return KindDuplicateSlug
	case errors.Is(err, ErrInvalidLocale):
		return KindInvalidLocale
	default:
		return KindOther
	}
}

// IsNotFound reports whether err means the post does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func invalidSlugError(slug string) error {
	return goerrors.Wrap(ErrInvalidSlug, goerrors.CategoryBadInput, fmt.Sprintf("invalid slug %q", slug)).
		WithTextCode(textCodeInvalidSlug).
		WithMetadata(map[string]any{"slug": slug})
}

func notFoundError(slug, locale string) error {
	return goerrors.Wrap(ErrNotFound, goerrors.CategoryNotFound, fmt.Sprintf("no post found for slug %q", slug)).
		WithTextCode(textCodeNotFound).
		WithMetadata(map[string]any{"slug": slug, "locale": locale})
}

func missingFieldsError(slug, path string, fields []string) error {
	return goerrors.Wrap(ErrMissingFields, goerrors.CategoryValidation, fmt.Sprintf("post %q is missing required frontmatter fields", slug)).
		WithTextCode(textCodeMissingFields).
		WithMetadata(map[string]any{"slug": slug, "path": path, "fields": fields})
}

func duplicateSlugError(slug, first, second string) error {
	return goerrors.Wrap(ErrDuplicateSlug, goerrors.CategoryConflict, fmt.Sprintf("slug %q is produced by %s and %s", slug, first, second)).
		WithTextCode(textCodeDuplicateSlug).
		WithMetadata(map[string]any{"slug": slug, "paths": []string{first, second}})
}

func invalidLocaleError(err error, locale string) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, fmt.Sprintf("invalid locale %q", locale)).
		WithTextCode(textCodeInvalidLocale)
}
