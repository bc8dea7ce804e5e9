package buffer

// OffsetFromPos returns the flat rune offset of p (clamped into the document).
func (b *Buffer) OffsetFromPos(p Pos) int {
	p = b.clampPos(p)
	off := 0
	for row := 0; row < p.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off + p.Col
}

// PosFromOffset converts a flat rune offset into a position. Offsets outside
// [0, Len()] report false.
func (b *Buffer) PosFromOffset(off int) (Pos, bool) {
	return b.posFromOffset(off)
}

func (b *Buffer) posFromOffset(off int) (Pos, bool) {
	if off < 0 {
		return Pos{}, false
	}
	acc := 0
	for row, line := range b.lines {
		if off <= acc+len(line) {
			return Pos{Row: row, Col: off - acc}, true
		}
		acc += len(line) + 1
	}
	return Pos{}, false
}

func (b *Buffer) endPos() Pos {
	last := len(b.lines) - 1
	return Pos{Row: last, Col: len(b.lines[last])}
}

// CaretOffset reports how many runes precede the caret, or the end of the
// active selection when there is one.
func (b *Buffer) CaretOffset() int {
	if r, ok := b.Selection(); ok {
		return b.OffsetFromPos(r.End)
	}
	return b.OffsetFromPos(b.cursor)
}

// SetCaretOffset collapses the selection and places the caret at off.
// Offsets with no matching position put the caret at the end of the text.
func (b *Buffer) SetCaretOffset(off int) {
	p, ok := b.posFromOffset(off)
	if !ok {
		p = b.endPos()
	}
	b.SetCursor(p)
}

// CaretToEnd moves the caret to the end of the text.
func (b *Buffer) CaretToEnd() {
	b.SetCursor(b.endPos())
}
