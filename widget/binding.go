package widget

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/evanesce/editor"
	"github.com/iw2rmb/evanesce/vanish"
)

// binding routes editor hooks to the controller. Once the controller is
// disposed every hook falls through to the editor's default behavior.
type binding struct {
	ctrl *vanish.Controller
}

func (b *binding) attached() bool {
	return b.ctrl != nil && !b.ctrl.Disposed()
}

func (b *binding) input(editor.InputEvent) tea.Cmd {
	if !b.attached() {
		return nil
	}
	return b.ctrl.Ingest()
}

func (b *binding) key(ev *editor.KeyEvent) {
	if b.attached() && ev.Insert && !b.ctrl.AllowInsert() {
		ev.PreventDefault()
	}
}

func (b *binding) paste(ev *editor.PasteEvent) {
	if !b.attached() {
		return
	}
	ev.PreventDefault()
	b.ctrl.Paste(ev.Text)
}

func (b *binding) copy(ev *editor.CopyEvent) {
	if !b.attached() {
		return
	}
	if data, ok := b.ctrl.Obfuscate(ev.Selection); ok {
		ev.SetData(data)
	}
}

func (b *binding) contextMenu(ev *editor.ContextMenuEvent) {
	if b.attached() && b.ctrl.ContextMenu() {
		ev.PreventDefault()
	}
}

// counter receives the character count from the controller.
type counter struct {
	text string
}

func (c *counter) SetText(s string) { c.text = s }

func (c *counter) render(style lipgloss.Style, limit int) string {
	text := c.text
	if text == "" {
		text = "0"
	}
	return style.Render(text + "/" + strconv.Itoa(limit))
}
