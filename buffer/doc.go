// Package buffer implements the in-memory document behind an editable surface.
//
// Text is stored as lines of runes. Positions are 0-based (Row, Col) in runes;
// flat offsets count runes across the whole document with each line break
// counted as one rune. Ranges are half-open: [Start, End).
package buffer
