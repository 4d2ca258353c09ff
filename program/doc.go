// Package program implements the instruction model and the source resolver for
// bfkit.
//
// A source text is filtered down to the instruction alphabet ("><+-.,[]" and,
// optionally, the halt symbol "~"). Every other character is a comment. The
// resolver pairs each loop-open with its loop-close in a single pass, so the
// resulting Program carries a consistent jump table that the machine and the
// compiler can consume without further checking.
package program
