package editor

import (
	"github.com/iw2rmb/evanesce/buffer"
	"github.com/iw2rmb/evanesce/internal/grapheme"
)

// visualRow is one screen row: runes [start, end) of logical row.
type visualRow struct {
	row        int
	start, end int
	last       bool // final segment of its logical row
}

// wrapWidth keeps one spare cell so an end-of-line cursor never overflows.
func (m *Model) wrapWidth() int {
	if m.viewport.Width <= 1 {
		return 0
	}
	return m.viewport.Width - 1
}

func (m *Model) layout() []visualRow {
	width := m.wrapWidth()
	rows := make([]visualRow, 0, m.buf.LineCount())
	for row := 0; row < m.buf.LineCount(); row++ {
		line := []rune(m.buf.Line(row))
		start, cells := 0, 0
		if width > 0 {
			for i, r := range line {
				w := grapheme.Width(r, m.cfg.TabWidth)
				if cells+w > width && i > start {
					rows = append(rows, visualRow{row: row, start: start, end: i})
					start, cells = i, 0
				}
				cells += w
			}
		}
		rows = append(rows, visualRow{row: row, start: start, end: len(line), last: true})
	}
	return rows
}

func cursorVisualRow(rows []visualRow, cur buffer.Pos) int {
	for i, vr := range rows {
		if vr.row != cur.Row {
			continue
		}
		if cur.Col < vr.end || vr.last {
			return i
		}
	}
	return 0
}

// posAt maps a cell (x, visual row) back to a document position.
func (m *Model) posAt(rows []visualRow, x, y int) buffer.Pos {
	if len(rows) == 0 {
		return buffer.Pos{}
	}
	vr := rows[clampInt(y, 0, len(rows)-1)]
	line := []rune(m.buf.Line(vr.row))

	cells := 0
	for i := vr.start; i < vr.end; i++ {
		w := grapheme.Width(line[i], m.cfg.TabWidth)
		if x < cells+w {
			return buffer.Pos{Row: vr.row, Col: i}
		}
		cells += w
	}
	col := vr.end
	if !vr.last && col > vr.start {
		// Clicking past a wrapped segment lands before its last rune.
		col--
	}
	return buffer.Pos{Row: vr.row, Col: col}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
