package vanish

import (
	"log/slog"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultMaxCharacters  = 1000
	DefaultCountdownDelay = 2000 * time.Millisecond
	DefaultTickInterval   = 100 * time.Millisecond
)

// DefaultPlaceholders are zero-width format runes: ZWSP, ZWNJ, ZWJ, word
// joiner and BOM.
var DefaultPlaceholders = []rune{'\u200b', '\u200c', '\u200d', '\u2060', '\ufeff'}

// TickFunc schedules fn after d. It matches tea.Tick.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Config configures a Controller. Zero values take the defaults.
type Config struct {
	MaxCharacters  int
	CountdownDelay time.Duration
	TickInterval   time.Duration
	Placeholders   []rune

	// Rand picks placeholders. Nil uses the process-wide source.
	Rand *rand.Rand

	// Tick schedules timers. Nil uses tea.Tick.
	Tick TickFunc

	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		MaxCharacters:  DefaultMaxCharacters,
		CountdownDelay: DefaultCountdownDelay,
		TickInterval:   DefaultTickInterval,
		Placeholders:   append([]rune(nil), DefaultPlaceholders...),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxCharacters <= 0 {
		c.MaxCharacters = def.MaxCharacters
	}
	if c.CountdownDelay <= 0 {
		c.CountdownDelay = def.CountdownDelay
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if len(c.Placeholders) == 0 {
		c.Placeholders = def.Placeholders
	} else {
		c.Placeholders = append([]rune(nil), c.Placeholders...)
	}
	if c.Tick == nil {
		c.Tick = tea.Tick
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
