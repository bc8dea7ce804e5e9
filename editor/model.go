package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/evanesce/buffer"
)

// Model is a Bubble Tea component that renders and edits a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport    viewport.Model
	lastVersion uint64

	mouseAnchor   buffer.Pos
	mouseDragging bool
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.viewport.MouseWheelEnabled = true
	m.buf.CaretToEnd()
	m.sync(true)
	return m
}

// Buffer returns the document behind the surface. Writes to it do not fire
// OnInput.
func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)
	m.sync(true)
	return m
}

func (m Model) Width() int  { return m.viewport.Width }
func (m Model) Height() int { return m.viewport.Height }

func (m Model) Focus() Model {
	m.focused = true
	m.sync(true)
	return m
}

func (m Model) Blur() Model {
	m.focused = false
	m.mouseDragging = false
	m.sync(false)
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	before := m.buf.TextVersion()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	default:
		return m, nil
	}

	input := m.notifyInput(before)
	m.sync(false)
	return m, tea.Batch(cmd, input)
}

func (m Model) View() string {
	m.sync(false)
	return m.viewport.View()
}

func (m Model) notifyInput(before uint64) tea.Cmd {
	if m.cfg.OnInput == nil || m.buf.TextVersion() == before {
		return nil
	}
	return m.cfg.OnInput(InputEvent{Text: m.buf.Text()})
}

// sync re-renders the viewport content and, when the buffer changed since the
// last sync (or force is set), scrolls the minimum needed to show the caret.
func (m *Model) sync(force bool) {
	rows := m.layout()
	m.viewport.SetContent(m.render(rows))

	if !force && m.buf.Version() == m.lastVersion {
		return
	}
	m.lastVersion = m.buf.Version()

	h := m.viewport.Height
	if h <= 0 {
		return
	}
	cur := cursorVisualRow(rows, m.buf.Cursor())
	y := m.viewport.YOffset
	if cur < y {
		y = cur
	}
	if cur >= y+h {
		y = cur - h + 1
	}
	m.viewport.SetYOffset(y)
}
