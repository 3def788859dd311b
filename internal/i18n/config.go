package i18n

import "strings"

// Config lists the locales the content store is organised by.
type Config struct {
	DefaultLocale string
	Locales       []string
	// BasePath is the public path of the default locale's blog index.
	BasePath string
}

// FromModuleConfig builds a Config, making sure the default locale is part
// of the locale list.
func FromModuleConfig(defaultLocale string, locales []string, basePath string) Config {
	defaultLocale = strings.TrimSpace(defaultLocale)
	out := make([]string, 0, len(locales)+1)
	seen := map[string]struct{}{}
	for _, locale := range append([]string{defaultLocale}, locales...) {
		locale = strings.TrimSpace(locale)
		key := strings.ToLower(locale)
		if locale == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, locale)
	}
	if strings.TrimSpace(basePath) == "" {
		basePath = "/blog"
	}
	return Config{
		DefaultLocale: defaultLocale,
		Locales:       out,
		BasePath:      "/" + strings.Trim(basePath, "/"),
	}
}
