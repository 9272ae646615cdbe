// Package sanitize prepares free-text input for storage. Content is
// first unescaped (backslash sequences resolved to their literal
// characters) and then HTML-encoded so that stored text cannot inject
// markup when rendered later. The order matters: unescape, then
// encode.
package sanitize

import (
	"html"
	"strings"
)

// Clean resolves backslash escapes in s and encodes
// markup-significant characters as HTML entities.
func Clean(s string) string {
	return html.EscapeString(stripSlashes(s))
}

// stripSlashes resolves backslash escape sequences:
// a doubled backslash becomes one backslash, \0 becomes NUL, a
// trailing lone backslash is dropped, and any other \X becomes X.
func stripSlashes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			b.WriteRune(runes[i])
			continue
		}
		i++
		if i >= len(runes) {
			// trailing lone backslash
			break
		}
		switch runes[i] {
		case '\\':
			b.WriteRune('\\')
		case '0':
			b.WriteRune('\x00')
		default:
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}
