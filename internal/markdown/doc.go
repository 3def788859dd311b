// Package markdown reads blog sources from the content store. It discovers
// the effective file set for a locale, splits YAML frontmatter from the
// Markdown body and renders bodies to HTML with goldmark.
package markdown
