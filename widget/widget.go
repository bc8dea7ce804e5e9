package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/evanesce/editor"
	"github.com/iw2rmb/evanesce/vanish"
)

// statusHeight is the number of rows reserved below the editor.
const statusHeight = 1

type Options struct {
	Vanish vanish.Config

	// Shown while the surface is empty.
	Placeholder string

	// Nil disables copy, cut and paste through the keyboard.
	Clipboard editor.Clipboard

	// Nil uses DefaultStyle.
	Style  *Style
	KeyMap KeyMap
}

type Style struct {
	Editor  editor.Style
	Counter lipgloss.Style
	Status  lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Editor:  editor.DefaultStyle(),
		Counter: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

type KeyMap struct {
	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(key.WithKeys("ctrl+q", "esc"), key.WithHelp("ctrl+q", "quit")),
	}
}

// Model is a vanishing text field with a character counter underneath.
type Model struct {
	editor  editor.Model
	bind    *binding
	counter *counter

	style  Style
	keys   KeyMap
	width  int
	height int
}

func New(opts Options) Model {
	style := DefaultStyle()
	if opts.Style != nil {
		style = *opts.Style
	}
	if len(opts.KeyMap.Quit.Keys()) == 0 {
		opts.KeyMap = DefaultKeyMap()
	}

	b := &binding{}
	cnt := &counter{}
	ed := editor.New(editor.Config{
		Placeholder:   opts.Placeholder,
		Style:         style.Editor,
		Clipboard:     opts.Clipboard,
		OnInput:       b.input,
		OnKey:         b.key,
		OnPaste:       b.paste,
		OnCopy:        b.copy,
		OnContextMenu: b.contextMenu,
	})
	b.ctrl = vanish.New(ed.Buffer(), cnt, opts.Vanish)

	return Model{
		editor:  ed,
		bind:    b,
		counter: cnt,
		style:   style,
		keys:    opts.KeyMap,
	}
}

// Controller returns the controller bound to the surface.
func (m Model) Controller() *vanish.Controller { return m.bind.ctrl }

// Text returns what the surface currently shows, placeholders included.
func (m Model) Text() string { return m.editor.Buffer().Text() }

// Count returns the last published character count.
func (m Model) Count() string { return m.counter.text }

// Dispose detaches the controller and cancels its timers.
func (m Model) Dispose() { m.bind.ctrl.Dispose() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor = m.editor.SetSize(msg.Width, max(msg.Height-statusHeight, 0))
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.Dispose()
			return m, tea.Quit
		}
	case vanish.CountdownMsg, vanish.TickMsg:
		return m, m.bind.ctrl.Update(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	limit := m.bind.ctrl.Config().MaxCharacters
	left := m.counter.render(m.style.Counter, limit)
	right := m.style.Status.Render(m.bind.ctrl.State().String())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	status := left
	if gap > 0 {
		status = left + strings.Repeat(" ", gap) + right
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.editor.View(), status)
}
