package domain

// MarkKind identifies the closed set of mark tags recognised in page
// markup. Thread backends key their discussions on (kind, id).
type MarkKind string

const (
	// MarkSuggestion anchors a suggested rewording of the wrapped text.
	MarkSuggestion MarkKind = "suggestion"

	// MarkPost anchors a discussion post to the wrapped text.
	MarkPost MarkKind = "post"
)

// Valid reports whether k is one of the recognised mark kinds.
func (k MarkKind) Valid() bool {
	return k == MarkSuggestion || k == MarkPost
}

// Range is a half-open byte range [Start, End) within a specific content
// snapshot. Ranges are derived by scanning and are only meaningful
// relative to the content they were scanned from.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// Mark is an inline annotation embedded in page markup. It has no
// storage of its own: it exists exactly as long as its wrapping tag
// exists in the page content. Within one page, ID is unique among marks
// of the same kind.
type Mark struct {
	// Kind is the mark tag name.
	Kind MarkKind

	// ID is the caller-supplied stable identifier, typically a UUID
	// minted client-side. Thread lookups key on it.
	ID string

	// Attrs carries optional tag attributes such as "color" and
	// "original".
	Attrs map[string]string

	// Inner is the byte range of the wrapped text, relative to the
	// content the mark was scanned from.
	Inner Range

	// Text is the wrapped text itself.
	Text string
}
