package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/evanesce/buffer"
	"github.com/iw2rmb/evanesce/internal/grapheme"
)

type cellKind uint8

const (
	cellText cellKind = iota
	cellSelected
	cellCursor
)

// runWriter batches consecutive cells sharing a style into one Render call.
type runWriter struct {
	st   Style
	out  strings.Builder
	kind cellKind
	run  strings.Builder
}

func (w *runWriter) write(kind cellKind, s string) {
	if kind != w.kind {
		w.flush()
		w.kind = kind
	}
	w.run.WriteString(s)
}

func (w *runWriter) flush() {
	if w.run.Len() == 0 {
		return
	}
	var style lipgloss.Style
	switch w.kind {
	case cellSelected:
		style = w.st.Selection
	case cellCursor:
		style = w.st.Cursor
	default:
		style = w.st.Text
	}
	w.out.WriteString(style.Render(w.run.String()))
	w.run.Reset()
}

func (w *runWriter) String() string {
	w.flush()
	return w.out.String()
}

func (m *Model) render(rows []visualRow) string {
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	if m.buf.Len() == 0 && m.cfg.Placeholder != "" {
		var sb strings.Builder
		if m.focused {
			sb.WriteString(m.cfg.Style.Cursor.Render(" "))
		}
		sb.WriteString(m.cfg.Style.Placeholder.Render(m.cfg.Placeholder))
		return sb.String()
	}

	out := make([]string, 0, len(rows))
	for _, vr := range rows {
		line := []rune(m.buf.Line(vr.row))
		w := &runWriter{st: m.cfg.Style}

		for col := vr.start; col < vr.end; col++ {
			r := line[col]
			text := string(r)
			switch {
			case r == '\t':
				text = strings.Repeat(" ", max(m.cfg.TabWidth, 1))
			case grapheme.Invisible(r):
				text = ""
			}

			p := buffer.Pos{Row: vr.row, Col: col}
			switch {
			case m.focused && p == cursor:
				if text == "" {
					// Keep the caret visible on zero-width runes.
					text = " "
				}
				w.write(cellCursor, text)
			case selOK && inRange(sel, p):
				w.write(cellSelected, text)
			default:
				w.write(cellText, text)
			}
		}

		if vr.last && m.focused && cursor.Row == vr.row && cursor.Col == vr.end {
			w.write(cellCursor, " ")
		}
		out = append(out, w.String())
	}
	return strings.Join(out, "\n")
}

func inRange(r buffer.Range, p buffer.Pos) bool {
	return !p.Less(r.Start) && p.Less(r.End)
}
