package vanish

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// CountdownMsg is delivered when the countdown elapses.
type CountdownMsg struct {
	ID  int
	tag int
}

// TickMsg is delivered on every vanish tick.
type TickMsg struct {
	ID  int
	tag int
}

func (c *Controller) countdownCmd() tea.Cmd {
	c.tag++
	id, tag := c.id, c.tag
	return c.cfg.Tick(c.cfg.CountdownDelay, func(time.Time) tea.Msg {
		return CountdownMsg{ID: id, tag: tag}
	})
}

func (c *Controller) tickCmd() tea.Cmd {
	c.tag++
	id, tag := c.id, c.tag
	return c.cfg.Tick(c.cfg.TickInterval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}
