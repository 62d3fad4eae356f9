package domain

// EditResult reports the outcome of applying one client edit to a page.
// Hunk rejection is expected under concurrent editing and is surfaced
// here as data, never as an error.
type EditResult struct {
	// PageID is the page the edit was applied to.
	PageID string

	// Saved is false when the edit was an exact no-op (empty diff) and
	// nothing was persisted or announced.
	Saved bool

	// Applied holds one flag per hunk, in patch order. The persisted
	// content reflects only the hunks marked true.
	Applied []bool

	// Revision is the content stamp after persisting. Empty when
	// Saved is false.
	Revision string
}

// Rejected returns the number of hunks that could not be anchored in
// the canonical content.
func (r EditResult) Rejected() int {
	n := 0
	for _, ok := range r.Applied {
		if !ok {
			n++
		}
	}
	return n
}

// Clean reports whether every hunk applied.
func (r EditResult) Clean() bool { return r.Rejected() == 0 }
