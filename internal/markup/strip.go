package markup

import (
	"html"
	"regexp"
)

// Pre-compiled regular expressions for tag stripping.
var (
	brTags        = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockElements = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|blockquote|pre)>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// Strip converts page markup to plain prose. Markup line breaks are
// normalized to newlines before tags are removed, so search excerpts
// never show tag fragments or lose paragraph boundaries.
func Strip(content string) string {
	content = brTags.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiNewlines.ReplaceAllString(content, "\n\n")
	return content
}
