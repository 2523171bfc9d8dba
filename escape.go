package xwalk

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	codeSpan     = regexp.MustCompile(`(?s)<code(?:\s[^>]*)?>.*?</code>`)
	entityPrefix = regexp.MustCompile(`^&(?:[A-Za-z][A-Za-z0-9]*|#[0-9]+|#[xX][0-9A-Fa-f]+);`)
	interTagWS   = regexp.MustCompile(`>\s+&lt;`)
)

// Escape normalizes serialized markup so it can be stored as a single-line
// property value. Newlines inside code spans become &#xa; before anything
// else is escaped. Bare ampersands and every '<' are then escaped, line
// breaks dropped, and whitespace between '>' and an escaped '<' removed.
// Quotes and '>' are kept.
func Escape(raw string) string {
	s := codeSpan.ReplaceAllStringFunc(raw, func(span string) string {
		return strings.ReplaceAll(span, "\n", "&#xa;")
	})
	s = escapeAmpersands(s)
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	return interTagWS.ReplaceAllString(s, ">&lt;")
}

// escapeAmpersands replaces every '&' that does not start an entity.
func escapeAmpersands(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		if s[i] == '&' && !entityPrefix.MatchString(s[i:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// EscapeEntities escapes the characters of a plain value that are special in
// markup. It is applied to attribute values and text before storage.
func EscapeEntities(s string) string {
	return html.EscapeString(s)
}
