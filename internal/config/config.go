// Package config loads the CLI's construction-time options from a TOML or
// YAML file.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iw2rmb/evanesce/internal/grapheme"
	"github.com/iw2rmb/evanesce/vanish"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	MaxCharacters int      `toml:"max_characters" yaml:"max_characters"`
	Countdown     Duration `toml:"countdown" yaml:"countdown"`
	Tick          Duration `toml:"tick" yaml:"tick"`

	// Placeholders are code points written as "U+200B".
	Placeholders []string `toml:"placeholders" yaml:"placeholders"`

	// Prompt is shown while the field is empty.
	Prompt string `toml:"prompt" yaml:"prompt"`

	Mouse bool `toml:"mouse" yaml:"mouse"`
	Color bool `toml:"color" yaml:"color"`

	Log Log `toml:"log" yaml:"log"`
}

type Log struct {
	File   string `toml:"file" yaml:"file"`
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

func Default() Config {
	ph := make([]string, len(vanish.DefaultPlaceholders))
	for i, r := range vanish.DefaultPlaceholders {
		ph[i] = FormatRune(r)
	}
	return Config{
		MaxCharacters: vanish.DefaultMaxCharacters,
		Countdown:     Duration(vanish.DefaultCountdownDelay),
		Tick:          Duration(vanish.DefaultTickInterval),
		Placeholders:  ph,
		Prompt:        "Start typing…",
		Mouse:         true,
		Color:         true,
		Log:           Log{Level: "info", Format: "text"},
	}
}

// Validate reports every problem at once. Each one wraps ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	if c.MaxCharacters <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_characters must be positive, got %d", ErrInvalid, c.MaxCharacters))
	}
	if c.Countdown <= 0 {
		errs = append(errs, fmt.Errorf("%w: countdown must be positive, got %s", ErrInvalid, c.Countdown))
	}
	if c.Tick <= 0 {
		errs = append(errs, fmt.Errorf("%w: tick must be positive, got %s", ErrInvalid, c.Tick))
	}
	if len(c.Placeholders) == 0 {
		errs = append(errs, fmt.Errorf("%w: placeholders must not be empty", ErrInvalid))
	}
	for _, s := range c.Placeholders {
		r, err := ParseRune(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: placeholders: %v", ErrInvalid, err))
			continue
		}
		if !grapheme.Invisible(r) {
			errs = append(errs, fmt.Errorf("%w: placeholders: %s is visible", ErrInvalid, s))
		}
	}
	return errors.Join(errs...)
}

// Runes returns the decoded placeholders. Invalid entries are skipped;
// Validate reports them.
func (c Config) Runes() []rune {
	out := make([]rune, 0, len(c.Placeholders))
	for _, s := range c.Placeholders {
		if r, err := ParseRune(s); err == nil {
			out = append(out, r)
		}
	}
	return out
}

// Vanish converts c into controller options.
func (c Config) Vanish() vanish.Config {
	return vanish.Config{
		MaxCharacters:  c.MaxCharacters,
		CountdownDelay: time.Duration(c.Countdown),
		TickInterval:   time.Duration(c.Tick),
		Placeholders:   c.Runes(),
	}
}

// ParseRune accepts "U+200B" (case-insensitive prefix).
func ParseRune(s string) (rune, error) {
	hex, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(s)), "U+")
	if !ok || hex == "" {
		return 0, fmt.Errorf("code point %q: want U+XXXX", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || n > 0x10FFFF {
		return 0, fmt.Errorf("code point %q: out of range", s)
	}
	return rune(n), nil
}

func FormatRune(r rune) string {
	return fmt.Sprintf("%U", r)
}

// Duration decodes from strings such as "2s" or "100ms".
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
