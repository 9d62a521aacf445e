package config

import (
	"errors"
	"maps"
	"os"
	"path/filepath"

	"github.com/dshills/caretkit/internal/input/key"
	"github.com/dshills/caretkit/internal/logging"
	"github.com/dshills/caretkit/internal/pairs"
)

// Config is the complete settings set.
type Config struct {
	Pairs    map[string]string `toml:"pairs" yaml:"pairs"`
	GoToLine GoToLine          `toml:"goto_line" yaml:"goto_line"`
	Theme    Theme             `toml:"theme" yaml:"theme"`
	Log      Log               `toml:"log" yaml:"log"`
}

// GoToLine configures the go-to-line prompt.
type GoToLine struct {
	Chord   string `toml:"chord" yaml:"chord"`
	Enabled bool   `toml:"enabled" yaml:"enabled"`
}

// Theme holds hex colours ("#rrggbb") for the terminal front-end.
type Theme struct {
	Text       string `toml:"text" yaml:"text"`
	Background string `toml:"background" yaml:"background"`
	Error      string `toml:"error" yaml:"error"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"` // empty disables file logging
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Pairs: maps.Clone(pairs.DefaultPairs),
		GoToLine: GoToLine{
			Chord:   "Ctrl+G",
			Enabled: true,
		},
		Theme: Theme{
			Text:       "#abb2bf",
			Background: "#282c34",
			Error:      "#e06c75",
		},
		Log: Log{Level: "info"},
	}
}

// Validate checks every setting and reports all failures at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.PairTable(); err != nil {
		errs = append(errs, &ValidationError{Setting: "pairs", Err: err})
	}
	if _, err := c.Chord(); err != nil {
		errs = append(errs, &ValidationError{Setting: "goto_line.chord", Err: err})
	}
	if _, err := c.Theme.Colors(); err != nil {
		errs = append(errs, &ValidationError{Setting: "theme", Err: err})
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, &ValidationError{Setting: "log.level", Err: errors.New("unknown level " + c.Log.Level)})
	}
	return errors.Join(errs...)
}

// PairTable builds the auto-close table.
func (c Config) PairTable() (pairs.Table, error) {
	return pairs.NewTable(c.Pairs)
}

// Chord parses the go-to-line chord.
func (c Config) Chord() (key.Event, error) {
	return key.Parse(c.GoToLine.Chord)
}

// LogLevel returns the configured level, falling back to info.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "caretkit", "config.toml"), nil
}
