// Package grapheme holds terminal cell-width helpers shared by renderers.
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Invisible reports whether r is a format rune that carries no glyph, such as
// a zero-width space, a joiner or a byte-order mark.
func Invisible(r rune) bool {
	return unicode.Is(unicode.Cf, r)
}

// Width returns the number of terminal cells r occupies. Tabs expand to
// tabWidth cells.
func Width(r rune, tabWidth int) int {
	if r == '\t' {
		return max(tabWidth, 1)
	}
	if Invisible(r) {
		return 0
	}
	w := runewidth.RuneWidth(r)
	if w == 0 && !unicode.Is(unicode.Mn, r) {
		// runewidth reports 0 for some emoji presentation runes.
		w = uniseg.StringWidth(string(r))
	}
	return max(w, 0)
}

// StringWidth sums Width over every rune of s.
func StringWidth(s string, tabWidth int) int {
	n := 0
	for _, r := range s {
		n += Width(r, tabWidth)
	}
	return n
}
