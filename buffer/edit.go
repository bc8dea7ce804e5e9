package buffer

// InsertText inserts s at the caret, replacing the active selection if any.
func (b *Buffer) InsertText(s string) {
	r, ok := b.Selection()
	if !ok {
		if s == "" {
			return
		}
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.replace(r, s)
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if r, ok := b.Selection(); ok {
		b.replace(r, "")
		return
	}
	row, col := b.cursor.Row, b.cursor.Col
	switch {
	case col > 0:
		b.replace(Range{Start: Pos{Row: row, Col: col - 1}, End: b.cursor}, "")
	case row > 0:
		// Join with the previous line.
		b.replace(Range{Start: Pos{Row: row - 1, Col: len(b.lines[row-1])}, End: b.cursor}, "")
	}
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if r, ok := b.Selection(); ok {
		b.replace(r, "")
		return
	}
	row, col := b.cursor.Row, b.cursor.Col
	switch {
	case col < len(b.lines[row]):
		b.replace(Range{Start: b.cursor, End: Pos{Row: row, Col: col + 1}}, "")
	case row < len(b.lines)-1:
		b.replace(Range{Start: b.cursor, End: Pos{Row: row + 1, Col: 0}}, "")
	}
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	if r, ok := b.Selection(); ok {
		b.replace(r, "")
	}
}

func (b *Buffer) replace(r Range, text string) {
	r = Range{Start: b.clampPos(r.Start), End: b.clampPos(r.End)}.Normalize()
	if r.IsEmpty() && text == "" {
		return
	}

	prefix := append([]rune(nil), b.lines[r.Start.Row][:r.Start.Col]...)
	suffix := append([]rune(nil), b.lines[r.End.Row][r.End.Col:]...)

	ins := splitLines(text)
	repl := make([][]rune, 0, len(ins))
	for i, part := range ins {
		line := part
		if i == 0 {
			line = append(prefix, part...)
		}
		repl = append(repl, line)
	}
	last := len(repl) - 1
	next := Pos{Row: r.Start.Row + last, Col: len(repl[last])}
	repl[last] = append(repl[last], suffix...)

	out := make([][]rune, 0, len(b.lines)-(r.End.Row-r.Start.Row)+last)
	out = append(out, b.lines[:r.Start.Row]...)
	out = append(out, repl...)
	out = append(out, b.lines[r.End.Row+1:]...)

	b.lines = out
	b.cursor = next
	b.sel = selection{}
	b.version++
	b.textVersion++
}
