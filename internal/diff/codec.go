// Package diff computes, serializes and applies text patches.
//
// It wraps diff-match-patch: hunks are anchored to a context window of
// surrounding text rather than fixed offsets, so a patch still applies
// when the canonical content has drifted from the snapshot the client
// edited. Application is fuzzy and per-hunk; a hunk whose context
// cannot be located within the search radius is rejected on its own
// without failing the rest of the patch.
//
// Everything here is pure and safe for concurrent use: no shared state
// is mutated after construction.
package diff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/custodia-labs/redline/internal/core/domain"
)

// Patch is one context-anchored hunk of a serialized edit.
type Patch = diffmatchpatch.Patch

// Codec computes reversible patches between text snapshots and moves
// them across the wire as plain text.
type Codec struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewCodec creates a codec.
func NewCodec() *Codec {
	dmp := diffmatchpatch.New()
	// Identical inputs must always yield identical hunks, so the
	// wall-clock diff deadline is disabled.
	dmp.DiffTimeout = 0
	return &Codec{dmp: dmp}
}

// Diff computes the hunks that turn before into after.
// Returns nil when the snapshots are equal; callers skip sending empty
// patches.
func (c *Codec) Diff(before, after string) []Patch {
	if before == after {
		return nil
	}
	return c.dmp.PatchMake(before, after)
}

// Encode serializes hunks to the wire format, transmittable as a string
// field in any request body.
func (c *Codec) Encode(patches []Patch) string {
	return c.dmp.PatchToText(patches)
}

// Decode parses a wire patch. Round-trip exact with Encode.
// Truncated or corrupted input yields domain.ErrMalformedPatch; a
// patch is never partially parsed.
func (c *Codec) Decode(text string) ([]Patch, error) {
	patches, err := c.dmp.PatchFromText(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPatch, err)
	}
	return patches, nil
}

// Apply attempts each hunk independently against current, which may
// have drifted from the snapshot the hunks were computed against.
// The returned text reflects only the hunks whose flag is true.
// Application is not atomic across hunks.
func (c *Codec) Apply(current string, patches []Patch) (string, []bool) {
	if len(patches) == 0 {
		return current, []bool{}
	}
	return c.dmp.PatchApply(patches, current)
}
