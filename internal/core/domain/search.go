package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// MaxPerPage caps the number of excerpts collected per page,
	// counting the title pseudo-excerpt when present. 0 means
	// unlimited.
	MaxPerPage int
}

// Excerpt is one bounded context window around a search hit.
type Excerpt struct {
	// Offset is the byte offset of the match within the page's
	// stripped plain text. Title-only hits use offset 0.
	Offset int

	// Length is the match length in bytes. Title-only hits report 0.
	Length int

	// Text is the delimiter-trimmed window around the match.
	Text string
}

// PageMatch is the per-page search result.
type PageMatch struct {
	// PageID identifies the matched page.
	PageID string

	// Title is the page title at query time.
	Title string

	// Matches holds the collected excerpts in document order.
	Matches []Excerpt

	// TotalMatches counts every content hit, including ones past the
	// excerpt cap. Title hits are not counted.
	TotalMatches int

	// Truncated is set when excerpt collection stopped at the
	// per-page cap.
	Truncated bool
}
