package vanish

// Surface is the editable display the controller mirrors and rewrites.
//
// Caret offsets are flat rune counts over the whole text; how the surface
// maps them onto its internal layout is its own business. SetCaretOffset
// places the caret at the end for offsets it cannot match.
type Surface interface {
	Text() string
	SetText(s string)

	CaretOffset() int
	SetCaretOffset(off int)
	CaretToEnd()

	// InsertText inserts at the caret, replacing any selection.
	InsertText(s string)
	HasSelection() bool
}

// Counter displays the current character count.
type Counter interface {
	SetText(s string)
}
