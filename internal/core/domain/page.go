package domain

import "time"

// Page represents a structured text document under collaborative editing.
// Content is the canonical markup held by the server; it is mutated only
// through patch application and mark operations.
type Page struct {
	// ID is the unique identifier for the page.
	ID string

	// TextID groups the pages of one text.
	TextID string

	// Order is the position of this page within its text.
	Order int

	// Version selects a historical variant of the page. It is optional
	// and not unique.
	Version string

	// Title is the human-readable title.
	Title string

	// Content is the canonical markup: prose plus embedded mark tags.
	Content string

	// ImageURL is an optional illustration for the page.
	ImageURL string

	// Revision is a content-derived stamp, updated on every save.
	Revision string

	// CreatedAt is when the page was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the page content last changed.
	UpdatedAt time.Time
}
