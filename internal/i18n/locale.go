package i18n

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned for identifiers that are not BCP 47 tags.
var ErrInvalidLocale = errors.New("i18n: invalid locale")

// cjkScripts are the scripts whose text is mixed with Latin runs and gets
// spacing at script boundaries.
var cjkScripts = map[string]struct{}{
	"Hans": {},
	"Hant": {},
	"Hani": {},
	"Jpan": {},
	"Kore": {},
}

// Locale is a resolved locale identifier.
type Locale struct {
	// Code names the locale directory in the content store.
	Code    string
	Tag     language.Tag
	Default bool
}

// CJK reports whether the locale's likely script is Chinese, Japanese or Korean.
func (l Locale) CJK() bool {
	script, _ := l.Tag.Script()
	_, ok := cjkScripts[script.String()]
	return ok
}

// Resolve maps a requested identifier to a configured locale. An empty value
// selects the default locale; a regional or script variant ("zh-Hans")
// resolves to its configured base ("zh"). Unconfigured but well-formed tags
// resolve to their canonical form so callers get an empty content set.
func (c Config) Resolve(requested string) (Locale, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		requested = c.DefaultLocale
	}

	tag, err := language.Parse(requested)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q", ErrInvalidLocale, requested)
	}

	code := tag.String()
	if configured, ok := c.lookup(code); ok {
		code = configured
	} else if base, _ := tag.Base(); base.String() != "und" {
		if configured, ok := c.lookup(base.String()); ok {
			code = configured
		}
	}

	return Locale{
		Code:    code,
		Tag:     tag,
		Default: strings.EqualFold(code, c.DefaultLocale),
	}, nil
}

func (c Config) lookup(code string) (string, bool) {
	for _, locale := range c.Locales {
		if strings.EqualFold(locale, code) {
			return locale, true
		}
	}
	return "", false
}

// IndexPath returns the public blog path for locale, with slug appended
// when it is not empty. The default locale lives at BasePath; other locales
// are prefixed with their code.
func (c Config) IndexPath(locale, slug string) string {
	base := c.BasePath
	if base == "" {
		base = "/blog"
	}
	if !strings.EqualFold(locale, c.DefaultLocale) {
		base = path.Join("/", locale, base)
	}
	if slug == "" {
		return base
	}
	return path.Join(base, slug)
}

// Alternates maps every configured locale to the path of the same index or
// post in that locale.
func (c Config) Alternates(slug string) map[string]string {
	out := make(map[string]string, len(c.Locales))
	for _, locale := range c.Locales {
		out[locale] = c.IndexPath(locale, slug)
	}
	return out
}
