package blog

import (
	"strings"
	"unicode"
)

// SpaceCJK inserts a single space wherever a CJK character touches an ASCII
// letter or digit, in either order. Existing spacing and punctuation are left
// untouched.
func SpaceCJK(text string) string {
	if text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)

	var prev rune
	for i, r := range text {
		if i > 0 && needsSpace(prev, r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func needsSpace(a, b rune) bool {
	return (isCJK(a) && isLatinAlnum(b)) || (isLatinAlnum(a) && isCJK(b))
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul, unicode.Bopomofo)
}

func isLatinAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
