package buffer

import "unicode"

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (doc start for MoveDoc)
	DirEnd  // line end (doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // extend the selection instead of clearing it
}

func (b *Buffer) Move(m Move) {
	prevCursor, prevSel := b.cursor, b.sel
	next := b.clampPos(b.step(prevCursor, m))

	sel := selection{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active {
			anchor = prevSel.anchor
		}
		if anchor != next {
			sel = selection{active: true, anchor: anchor, end: next}
		}
	}

	if next == prevCursor && sel == prevSel {
		return
	}
	b.cursor = next
	b.sel = sel
	b.version++
}

func (b *Buffer) step(p Pos, m Move) Pos {
	last := len(b.lines) - 1
	line := b.lines[p.Row]

	switch m.Unit {
	case MoveDoc:
		if m.Dir == DirHome || m.Dir == DirUp {
			return Pos{}
		}
		return Pos{Row: last, Col: len(b.lines[last])}
	case MoveWord:
		switch m.Dir {
		case DirLeft:
			return Pos{Row: p.Row, Col: prevWordBoundary(line, p.Col)}
		case DirRight:
			return Pos{Row: p.Row, Col: nextWordBoundary(line, p.Col)}
		}
	}

	switch m.Dir {
	case DirLeft:
		if p.Col > 0 {
			return Pos{Row: p.Row, Col: p.Col - 1}
		}
		if p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: len(b.lines[p.Row-1])}
		}
	case DirRight:
		if p.Col < len(line) {
			return Pos{Row: p.Row, Col: p.Col + 1}
		}
		if p.Row < last {
			return Pos{Row: p.Row + 1}
		}
	case DirUp:
		if p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: min(p.Col, len(b.lines[p.Row-1]))}
		}
	case DirDown:
		if p.Row < last {
			return Pos{Row: p.Row + 1, Col: min(p.Col, len(b.lines[p.Row+1]))}
		}
	case DirHome:
		return Pos{Row: p.Row}
	case DirEnd:
		return Pos{Row: p.Row, Col: len(line)}
	}
	return p
}

// Word boundaries skip whitespace, then non-whitespace, within one line.
func prevWordBoundary(line []rune, col int) int {
	i := clampInt(col, 0, len(line))
	for i > 0 && unicode.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []rune, col int) int {
	i := clampInt(col, 0, len(line))
	for i < len(line) && unicode.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !unicode.IsSpace(line[i]) {
		i++
	}
	return i
}
