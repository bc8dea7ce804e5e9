package buffer

import "strings"

type selection struct {
	active bool
	anchor Pos
	end    Pos
}

// Buffer holds document text, the caret and an optional selection.
//
// Version increments on any observable change (text, caret or selection).
// TextVersion increments only when the text changes.
type Buffer struct {
	lines [][]rune

	version     uint64
	textVersion uint64

	cursor Pos
	sel    selection
}

func New(text string) *Buffer {
	return &Buffer{lines: splitLines(text)}
}

func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Len returns the document length in runes, line breaks included.
func (b *Buffer) Len() int {
	n := len(b.lines) - 1
	for _, line := range b.lines {
		n += len(line)
	}
	return n
}

func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns a copy of the given row, or "" when out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) TextVersion() uint64 { return b.textVersion }

// SetText replaces the whole document. The caret keeps its row/col clamped
// into the new text and any selection is dropped.
func (b *Buffer) SetText(text string) {
	next := splitLines(text)
	if linesEqual(b.lines, next) {
		return
	}
	b.lines = next
	b.cursor = b.clampPos(b.cursor)
	b.sel = selection{}
	b.version++
	b.textVersion++
}

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor && !b.sel.active {
		return
	}
	b.cursor = next
	b.sel = selection{}
	b.version++
}

// Selection returns the normalized active selection, if any.
func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := Range{Start: b.sel.anchor, End: b.sel.end}.Normalize()
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SetSelection selects r (clamped) and moves the caret to r.End. An empty
// range clears the selection.
func (b *Buffer) SetSelection(r Range) {
	anchor, end := b.clampPos(r.Start), b.clampPos(r.End)
	next := selection{}
	if anchor != end {
		next = selection{active: true, anchor: anchor, end: end}
	}
	if next == b.sel && b.cursor == end {
		return
	}
	b.sel = next
	b.cursor = end
	b.version++
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	b.sel = selection{}
	b.version++
}

func (b *Buffer) HasSelection() bool {
	_, ok := b.Selection()
	return ok
}

// SelectedText returns the text covered by the active selection.
func (b *Buffer) SelectedText() string {
	r, ok := b.Selection()
	if !ok {
		return ""
	}
	return b.textInRange(r)
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	row := clampInt(p.Row, 0, len(b.lines)-1)
	return Pos{Row: row, Col: clampInt(p.Col, 0, b.lineLen(row))}
}

func (b *Buffer) textInRange(r Range) string {
	r = r.Normalize()
	if r.IsEmpty() {
		return ""
	}
	if r.Start.Row == r.End.Row {
		return string(b.lines[r.Start.Row][r.Start.Col:r.End.Col])
	}

	var sb strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		if row > r.Start.Row {
			sb.WriteByte('\n')
		}
		from, to := 0, len(b.lines[row])
		if row == r.Start.Row {
			from = r.Start.Col
		}
		if row == r.End.Row {
			to = r.End.Col
		}
		sb.WriteString(string(b.lines[row][from:to]))
	}
	return sb.String()
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	return lines
}

func linesEqual(a, b [][]rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i]) != string(b[i]) {
			return false
		}
	}
	return true
}
