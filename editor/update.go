package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/evanesce/buffer"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.focused {
		return m
	}

	// Bracketed pastes always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste {
		if !m.cfg.ReadOnly {
			m.paste(string(msg.Runes))
		}
		return m
	}

	km := m.cfg.KeyMap
	if m.cfg.OnKey != nil {
		ev := &KeyEvent{Msg: msg, Insert: insertsText(msg, km)}
		m.cfg.OnKey(ev)
		if ev.DefaultPrevented() {
			return m
		}
	}

	switch {
	case key.Matches(msg, km.Left):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirDown})

	case key.Matches(msg, km.ShiftLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.DocStart):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Backspace):
		if !m.cfg.ReadOnly {
			m.buf.DeleteBackward()
		}
	case key.Matches(msg, km.Delete):
		if !m.cfg.ReadOnly {
			m.buf.DeleteForward()
		}
	case key.Matches(msg, km.Enter):
		if !m.cfg.ReadOnly {
			m.buf.InsertText("\n")
		}

	case key.Matches(msg, km.SelectAll):
		end, _ := m.buf.PosFromOffset(m.buf.Len())
		m.buf.SetSelection(buffer.Range{End: end})
	case key.Matches(msg, km.Copy):
		m.copySelection(false)
	case key.Matches(msg, km.Cut):
		m.copySelection(!m.cfg.ReadOnly)
	case key.Matches(msg, km.Paste):
		if !m.cfg.ReadOnly {
			m.pasteClipboard()
		}

	default:
		if m.cfg.ReadOnly {
			return m
		}
		if msg.Type == tea.KeyTab {
			m.buf.InsertText("\t")
			return m
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			m.buf.InsertText(string(msg.Runes))
		}
	}

	return m
}

func insertsText(msg tea.KeyMsg, km KeyMap) bool {
	if key.Matches(msg, km.Enter) || msg.Type == tea.KeyTab {
		return true
	}
	return msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt
}

// copySelection runs the copy flow; with cut set the selection is deleted
// afterwards whatever the handler decided about the payload.
func (m Model) copySelection(cut bool) {
	ev := &CopyEvent{Selection: m.buf.SelectedText(), Cut: cut}
	if m.cfg.OnCopy != nil {
		m.cfg.OnCopy(ev)
	}

	payload, write := ev.Selection, ev.Selection != ""
	if ev.DefaultPrevented() {
		payload, write = ev.Data()
	}
	if write && m.cfg.Clipboard != nil {
		_ = m.cfg.Clipboard.WriteText(payload)
	}

	if cut {
		m.buf.DeleteSelection()
	}
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	m.paste(s)
}

func (m Model) paste(s string) {
	// Normalize newlines from external sources.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	ev := &PasteEvent{Text: s}
	if m.cfg.OnPaste != nil {
		m.cfg.OnPaste(ev)
		if ev.DefaultPrevented() {
			return
		}
	}
	m.buf.InsertText(ev.Text)
}
