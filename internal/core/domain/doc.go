// Package domain defines the core business entities for Redline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: A structured text document with embedded marks
//   - Mark: An inline, identity-bearing annotation wrapping a text range
//   - EditResult: The outcome of applying a client edit to a page
//   - PageMatch: A ranked search result with bounded excerpts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
