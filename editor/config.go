package editor

import tea "github.com/charmbracelet/bubbletea"

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Shown dimmed while the buffer is empty.
	Placeholder string

	Style    Style
	KeyMap   KeyMap
	TabWidth int // default: 4

	ReadOnly  bool
	Clipboard Clipboard

	// OnInput fires after a user-driven update changed the text. Text written
	// directly to the buffer by the host does not fire it.
	OnInput func(InputEvent) tea.Cmd

	// OnKey fires before a key is applied.
	OnKey func(*KeyEvent)

	// OnPaste fires for bracketed pastes, the paste binding and the default
	// context-menu action.
	OnPaste func(*PasteEvent)

	// OnCopy fires for the copy and cut bindings.
	OnCopy func(*CopyEvent)

	// OnContextMenu fires on a right mouse button press inside the surface.
	OnContextMenu func(*ContextMenuEvent)
}

func (c Config) withDefaults() Config {
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	if c.KeyMap.isZero() {
		c.KeyMap = DefaultKeyMap()
	}
	return c
}
