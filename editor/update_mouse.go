package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/evanesce/buffer"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if tea.MouseEvent(msg).IsWheel() {
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if !m.focused {
		return m, nil
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if !m.mouseInBounds(msg.X, msg.Y) {
			return m, nil
		}
		p := m.screenToDocPos(msg.X, msg.Y)

		switch msg.Button { //nolint:exhaustive
		case tea.MouseButtonLeft:
			if msg.Shift {
				anchor := m.buf.Cursor()
				if r, ok := m.buf.Selection(); ok {
					anchor = r.Start
				}
				m.mouseAnchor = anchor
				m.buf.SetSelection(buffer.Range{Start: anchor, End: p})
			} else {
				m.mouseAnchor = p
				m.buf.SetCursor(p)
			}
			m.mouseDragging = true
		case tea.MouseButtonRight:
			m.contextMenu(p)
		}

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, nil
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		m.buf.SetSelection(buffer.Range{Start: m.mouseAnchor, End: m.screenToDocPos(x, y)})

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, nil
}

// contextMenu fires OnContextMenu. The default action pastes the clipboard at
// the pointer, as most terminals do on right click.
func (m Model) contextMenu(p buffer.Pos) {
	ev := &ContextMenuEvent{Pos: p}
	if m.cfg.OnContextMenu != nil {
		m.cfg.OnContextMenu(ev)
		if ev.DefaultPrevented() {
			return
		}
	}
	if m.cfg.ReadOnly {
		return
	}
	m.buf.SetCursor(p)
	m.pasteClipboard()
}

func (m Model) screenToDocPos(x, y int) buffer.Pos {
	rows := m.layout()
	return m.posAt(rows, x, y+m.viewport.YOffset)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
