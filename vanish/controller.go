package vanish

import (
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Controller drives one Surface. It is not safe for concurrent use; all
// methods are meant to run on the Bubble Tea update loop.
type Controller struct {
	cfg     Config
	surface Surface
	counter Counter
	log     *slog.Logger

	id  int
	tag int

	state    State
	started  bool
	disposed bool

	buf    []rune
	cursor int
}

// New returns an idle controller bound to surface. counter may be nil.
func New(surface Surface, counter Counter, cfg Config) *Controller {
	cfg = cfg.withDefaults()
	c := &Controller{
		cfg:     cfg,
		surface: surface,
		counter: counter,
		id:      nextID(),
	}
	c.log = cfg.Logger.With("component", "vanish", "controller", c.id)
	return c
}

func (c *Controller) ID() int        { return c.id }
func (c *Controller) State() State   { return c.state }
func (c *Controller) Cursor() int    { return c.cursor }
func (c *Controller) Disposed() bool { return c.disposed }
func (c *Controller) Config() Config { return c.cfg }

// Buffer returns the mirrored text.
func (c *Controller) Buffer() string { return string(c.buf) }

// Ingest mirrors the surface after an external edit. It returns the
// countdown command when this edit is the first to make the text non-empty.
func (c *Controller) Ingest() tea.Cmd {
	if c.disposed {
		return nil
	}

	text := []rune(c.surface.Text())
	if len(text) > c.cfg.MaxCharacters {
		text = text[:c.cfg.MaxCharacters]
		c.surface.SetText(string(text))
		c.surface.CaretToEnd()
		c.buf = text
		c.publishCount()
		c.log.Debug("input truncated", "max", c.cfg.MaxCharacters)
		return nil
	}

	c.buf = text
	var cmd tea.Cmd
	if !c.started && len(text) > 0 {
		c.started = true
		cmd = c.startCountdown()
	}
	c.publishCount()
	return cmd
}

// Update consumes countdown and tick messages addressed to this controller.
// Messages from cancelled or foreign timers are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if c.disposed {
		return nil
	}
	switch msg := msg.(type) {
	case CountdownMsg:
		if msg.ID != c.id || msg.tag != c.tag || c.state != StateCountingDown {
			return nil
		}
		return c.beginVanishing()
	case TickMsg:
		if msg.ID != c.id || msg.tag != c.tag || c.state != StateVanishing {
			return nil
		}
		c.tick()
		return c.tickCmd()
	}
	return nil
}

func (c *Controller) startCountdown() tea.Cmd {
	if c.state != StateIdle {
		return nil
	}
	c.state = StateCountingDown
	c.log.Debug("countdown started", "delay", c.cfg.CountdownDelay)
	return c.countdownCmd()
}

func (c *Controller) beginVanishing() tea.Cmd {
	if c.state == StateVanishing {
		return nil
	}
	c.state = StateVanishing
	c.cursor = 0
	c.log.Debug("vanishing started", "interval", c.cfg.TickInterval)
	return c.tickCmd()
}

// tick turns the rune under the vanish cursor into a placeholder. The
// surface is read fresh because the user may have edited since the last tick.
func (c *Controller) tick() {
	text := []rune(c.surface.Text())
	if c.cursor >= len(text) {
		return
	}

	caret := c.surface.CaretOffset()
	text[c.cursor] = c.placeholder()
	c.surface.SetText(string(text))
	c.surface.SetCaretOffset(caret)

	c.buf = text
	c.cursor++
}

// Paste inserts text at the caret, keeping only the prefix that fits under
// the length limit. The rest is dropped silently.
func (c *Controller) Paste(text string) {
	if c.disposed {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	paste := []rune(text)
	room := c.cfg.MaxCharacters - utf8.RuneCountInString(c.surface.Text())
	if len(paste) > room {
		if room <= 0 {
			c.log.Debug("paste dropped", "len", len(paste))
			return
		}
		paste = paste[:room]
	}
	if len(paste) == 0 {
		return
	}
	c.surface.InsertText(string(paste))
}

// Obfuscate returns a payload of the same length as selection made only of
// placeholders. An empty selection yields no payload.
func (c *Controller) Obfuscate(selection string) (string, bool) {
	n := utf8.RuneCountInString(selection)
	if n == 0 {
		return "", false
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = c.placeholder()
	}
	return string(out), true
}

// ContextMenu reports whether a context-menu request must be suppressed.
// It always is.
func (c *Controller) ContextMenu() bool { return true }

// AllowInsert reports whether a key that inserts text may proceed. Insertions
// are refused once the limit is reached, unless they replace a selection.
func (c *Controller) AllowInsert() bool {
	if c.disposed || c.surface.HasSelection() {
		return true
	}
	return utf8.RuneCountInString(c.surface.Text()) < c.cfg.MaxCharacters
}

// Dispose cancels the countdown and the recurring tick. Timer messages still
// in flight are ignored, and every later call is a no-op.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.tag++
	c.log.Debug("disposed", "state", c.state.String(), "cursor", c.cursor)
}

func (c *Controller) publishCount() {
	if c.counter == nil {
		return
	}
	c.counter.SetText(strconv.Itoa(len(c.buf)))
}

func (c *Controller) placeholder() rune {
	p := c.cfg.Placeholders
	if c.cfg.Rand != nil {
		return p[c.cfg.Rand.IntN(len(p))]
	}
	return p[rand.IntN(len(p))]
}
