package blog

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases value, collapses every run of characters outside
// [a-z0-9] into a single hyphen and trims hyphens from both ends.
func Slugify(value string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(slug, "-")
}

// validRequestSlug rejects path separators and dots so a requested slug can
// never address anything outside the locale's file set.
func validRequestSlug(slug string) bool {
	return !strings.ContainsAny(slug, `/\.`)
}
