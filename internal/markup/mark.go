package markup

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/redline/internal/core/domain"
)

// Pre-compiled regular expressions for mark scanning.
var (
	openMarkTag = regexp.MustCompile(`<(suggestion|post)\b([^>]*)>`)
	markAttr    = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9_-]*)="([^"]*)"`)
)

// span records the tag boundaries of one located mark.
type span struct {
	openStart  int // first byte of the open tag
	innerStart int // first byte of the wrapped text
	innerEnd   int // one past the last byte of the wrapped text
	closeEnd   int // one past the close tag
}

// findSpan locates the first mark matching (kind, id) in document
// order. Later duplicates from retried clients are ignored.
func findSpan(content string, kind domain.MarkKind, id string) (span, bool) {
	for _, loc := range openMarkTag.FindAllStringSubmatchIndex(content, -1) {
		tagKind := content[loc[2]:loc[3]]
		if tagKind != string(kind) {
			continue
		}
		attrs := parseAttrs(content[loc[4]:loc[5]])
		if attrs["id"] != id {
			continue
		}
		closeTag := "</" + tagKind + ">"
		rel := strings.Index(content[loc[1]:], closeTag)
		if rel < 0 {
			// Unterminated tag, not a usable anchor.
			continue
		}
		return span{
			openStart:  loc[0],
			innerStart: loc[1],
			innerEnd:   loc[1] + rel,
			closeEnd:   loc[1] + rel + len(closeTag),
		}, true
	}
	return span{}, false
}

// parseAttrs extracts key="value" pairs from the inside of a tag.
func parseAttrs(raw string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range markAttr.FindAllStringSubmatch(raw, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}

// FindRange locates the text wrapped by the mark matching (kind, id).
// The returned range is relative to content and valid only for it.
func FindRange(content string, kind domain.MarkKind, id string) (domain.Range, bool) {
	sp, ok := findSpan(content, kind, id)
	if !ok {
		return domain.Range{}, false
	}
	return domain.Range{Start: sp.innerStart, End: sp.innerEnd}, true
}

// ReplaceContent swaps the text strictly between the mark's open and
// close tags with newText, leaving the tag and its attributes
// untouched. Returns content unchanged when the wrapped text already
// equals newText, or when the mark is missing: a thread whose anchor
// was deleted by a concurrent edit is an expected, non-fatal event.
func ReplaceContent(content string, kind domain.MarkKind, id, newText string) string {
	sp, ok := findSpan(content, kind, id)
	if !ok {
		return content
	}
	if content[sp.innerStart:sp.innerEnd] == newText {
		return content
	}
	return content[:sp.innerStart] + newText + content[sp.innerEnd:]
}

// RemoveMark deletes the mark's tags but keeps the wrapped text as
// plain prose. No-op when the mark is missing.
func RemoveMark(content string, kind domain.MarkKind, id string) string {
	sp, ok := findSpan(content, kind, id)
	if !ok {
		return content
	}
	return content[:sp.openStart] + content[sp.innerStart:sp.innerEnd] + content[sp.closeEnd:]
}

// AddMark wraps the given range with a new mark tag carrying id and
// attrs. A (kind, id) already present in content is rejected with
// domain.ErrAlreadyExists so a retried add cannot plant the duplicate
// the lookup tie-break exists to tolerate. The caller guarantees the
// range does not cross an existing mark of the same kind; overlaps are
// neither merged nor rejected here.
func AddMark(content string, kind domain.MarkKind, id string, rng domain.Range, attrs map[string]string) (string, error) {
	if !kind.Valid() || id == "" {
		return content, domain.ErrInvalidInput
	}
	if rng.Start < 0 || rng.End < rng.Start || rng.End > len(content) {
		return content, domain.ErrInvalidInput
	}
	if _, ok := findSpan(content, kind, id); ok {
		return content, domain.ErrAlreadyExists
	}
	open := openTag(kind, id, attrs)
	closing := "</" + string(kind) + ">"
	return content[:rng.Start] + open + content[rng.Start:rng.End] + closing + content[rng.End:], nil
}

// openTag renders the open tag with id first and remaining attributes
// in sorted order so output is deterministic.
func openTag(kind domain.MarkKind, id string, attrs map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<%s id=%q`, kind, id)

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k == "id" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s=%q`, k, attrs[k])
	}
	b.WriteString(">")
	return b.String()
}

// Scan returns every well-formed mark in document order. Content is
// re-scanned after every external replacement, so the ranges always
// describe the snapshot passed in.
func Scan(content string) []domain.Mark {
	var marks []domain.Mark
	for _, loc := range openMarkTag.FindAllStringSubmatchIndex(content, -1) {
		kind := domain.MarkKind(content[loc[2]:loc[3]])
		attrs := parseAttrs(content[loc[4]:loc[5]])
		id := attrs["id"]
		if id == "" {
			continue
		}
		closeTag := "</" + string(kind) + ">"
		rel := strings.Index(content[loc[1]:], closeTag)
		if rel < 0 {
			continue
		}
		delete(attrs, "id")
		marks = append(marks, domain.Mark{
			Kind:  kind,
			ID:    id,
			Attrs: attrs,
			Inner: domain.Range{Start: loc[1], End: loc[1] + rel},
			Text:  content[loc[1] : loc[1]+rel],
		})
	}
	return marks
}
