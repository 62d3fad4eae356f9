// Package markup treats page content as a sequence of text runs, some
// wrapped in identity-bearing mark tags, and provides the operations
// that keep thread anchors stable while the surrounding prose moves.
//
// Offsets are never cached: every operation walks the content it is
// given, so results are always correct relative to that snapshot no
// matter how much editing happened before it. All functions are pure.
package markup
