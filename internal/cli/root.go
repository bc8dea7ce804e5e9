// Package cli wires the configuration, logging and widget packages into the
// evanesce command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/evanesce"
	"github.com/iw2rmb/evanesce/editor"
	"github.com/iw2rmb/evanesce/internal/config"
	"github.com/iw2rmb/evanesce/internal/logging"
	"github.com/iw2rmb/evanesce/vanish"
	"github.com/iw2rmb/evanesce/widget"
)

// ErrNotTerminal is returned when stdin cannot drive an interactive program.
var ErrNotTerminal = errors.New("stdin is not a terminal")

type App struct {
	ConfigPath string
	MaxChars   int
	Countdown  time.Duration
	Tick       time.Duration
	LogFile    string
	Debug      bool
	NoMouse    bool
	NoColor    bool

	In  *os.File
	Out io.Writer

	// run starts the program; tests replace it.
	run func(tea.Model, ...tea.ProgramOption) error
}

var vanishDefault = vanish.DefaultConfig()

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{In: os.Stdin, Out: os.Stdout, run: runProgram})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "evanesce",
		Short:        "A text field whose contents fade away as you type",
		Version:      evanesce.Version(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Write something nobody will read
  evanesce

  # Short fuse, fast fade
  evanesce --countdown 500ms --tick 30ms

  # Use a config file and keep a debug log
  evanesce --config ~/.config/evanesce/config.yaml --log-file /tmp/evanesce.log --debug
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.resolve(cmd)
			if err != nil {
				return err
			}
			return app.start(cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&app.ConfigPath, "config", envOr("EVANESCE_CONFIG", ""), "Config file (.toml, .yaml or .yml)")
	f.IntVar(&app.MaxChars, "max-chars", vanishDefault.MaxCharacters, "Maximum number of characters")
	f.DurationVar(&app.Countdown, "countdown", vanishDefault.CountdownDelay, "Delay between the first keystroke and the first vanish")
	f.DurationVar(&app.Tick, "tick", vanishDefault.TickInterval, "Interval between vanished characters")
	f.StringVar(&app.LogFile, "log-file", envOr("EVANESCE_LOG", ""), "Write logs to this file")
	f.BoolVar(&app.Debug, "debug", false, "Log at debug level")
	f.BoolVar(&app.NoMouse, "no-mouse", false, "Disable mouse support")
	f.BoolVar(&app.NoColor, "no-color", false, "Disable colors")

	return cmd
}

// resolve loads the config file and applies the flags the user set.
func (a *App) resolve(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if a.ConfigPath != "" {
		cfg, err = config.Load(a.ConfigPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return config.Config{}, err
	}

	f := cmd.Flags()
	if f.Changed("max-chars") {
		cfg.MaxCharacters = a.MaxChars
	}
	if f.Changed("countdown") {
		cfg.Countdown = config.Duration(a.Countdown)
	}
	if f.Changed("tick") {
		cfg.Tick = config.Duration(a.Tick)
	}
	if a.LogFile != "" {
		cfg.Log.File = a.LogFile
	}
	if a.Debug {
		cfg.Log.Level = "debug"
	}
	if a.NoMouse {
		cfg.Mouse = false
	}
	if a.NoColor {
		cfg.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (a *App) start(cfg config.Config) error {
	if a.In == nil || !isTerminal(a.In) {
		return ErrNotTerminal
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("log format: %w", err)
	}
	logger, err := logging.New(logging.Config{
		Level:     level,
		Format:    format,
		FilePath:  cfg.Log.File,
		Component: "evanesce",
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	if !cfg.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	vc := cfg.Vanish()
	vc.Logger = logger.Logger

	var clip editor.Clipboard
	if editor.SystemClipboardAvailable() {
		clip = editor.SystemClipboard{}
	} else {
		logger.Warn("system clipboard unavailable")
	}

	model := widget.New(widget.Options{
		Vanish:      vc,
		Placeholder: cfg.Prompt,
		Clipboard:   clip,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithInput(a.In), tea.WithOutput(a.Out)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logger.Info("starting", "version", evanesce.Version(), "max", vc.MaxCharacters)
	defer model.Dispose()
	return a.run(model, opts...)
}

func runProgram(m tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

var isTerminal = func(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
