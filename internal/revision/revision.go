// Package revision derives content stamps for pages. The stamp changes
// whenever the content changes, which gives callers a cheap equality
// check across fetches without comparing full text.
package revision

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Of returns the revision stamp for page content.
func Of(content string) string {
	sum := blake3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
