// Package app wires the text area, its plugins, the scripting state and
// the settings file to a terminal and runs the event loop.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/caretkit/internal/config"
	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/host"
	"github.com/dshills/caretkit/internal/logging"
	"github.com/dshills/caretkit/internal/plugin"
	"github.com/dshills/caretkit/internal/plugin/autoclose"
	"github.com/dshills/caretkit/internal/plugin/gotoline"
	"github.com/dshills/caretkit/internal/plugin/lua"
	"github.com/dshills/caretkit/internal/renderer"
	"github.com/dshills/caretkit/internal/renderer/backend"
)

// InitScript is the script run from the settings file's directory.
const InitScript = "init.lua"

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file. Empty means built-in defaults and
	// no live reload.
	ConfigPath string

	// File is the document to edit. It need not exist yet.
	File string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// Logger replaces the logger built from the settings.
	Logger *logging.Logger

	// Plugins are attached after the built-in ones. A plugin that fails to
	// attach is skipped and reported on the status line.
	Plugins []plugin.Plugin
}

// Application is the editor: one text area with the auto-close and
// go-to-line plugins attached, drawn on a terminal.
type Application struct {
	opts Options

	term     *backend.Terminal
	renderer *renderer.Renderer

	area      *host.TextArea
	plugins   *plugin.Manager
	autoClose *autoclose.Plugin
	goToLine  *gotoline.Plugin
	scripts   *lua.State

	cfg     config.Config
	logger  *logging.Logger
	logFile *os.File

	path     string
	savedRev buffer.RevisionID
	message  string

	// paste collects bracketed paste input; nil outside a paste.
	paste []rune

	running   atomic.Bool
	closeOnce sync.Once
}

// New loads the settings, opens the document and attaches the plugins.
// term must be initialised by the caller before Run.
func New(term *backend.Terminal, opts Options) (*Application, error) {
	cfg, cfgErr := loadConfig(opts.ConfigPath)
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrFileNotFound) {
		return nil, &InitError{Component: "config", Err: cfgErr}
	}

	app := &Application{
		opts: opts,
		term: term,
		path: opts.File,
	}
	if err := app.initLogger(cfg); err != nil {
		return nil, &InitError{Component: "logging", Err: err}
	}
	if cfgErr != nil {
		app.logger.Warn("%v; using defaults", cfgErr)
	}

	buf, err := openDocument(opts.File)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.savedRev = buf.RevisionID()
	term.SetTabWidth(buf.TabWidth())

	app.area = host.NewTextArea(buf, host.WithLogger(app.logger))
	app.plugins = plugin.NewManager(app.logger)
	app.plugins.Subscribe(app.pluginEvent)
	app.autoClose = autoclose.New(autoclose.WithLogger(app.logger))
	app.goToLine = gotoline.New(gotoline.WithLogger(app.logger))
	for _, p := range []plugin.Plugin{app.autoClose, app.goToLine} {
		if err := app.plugins.Attach(app.area, p); err != nil {
			app.Close()
			return nil, &InitError{Component: p.Name(), Err: err}
		}
	}
	for _, p := range opts.Plugins {
		if p != nil {
			// Failures reach the status line through pluginEvent.
			_ = app.plugins.Attach(app.area, p)
		}
	}
	app.logger.Debug("plugins: %s", strings.Join(app.plugins.Plugins(app.area), ", "))

	app.renderer = renderer.New(term, backend.Styles{})
	if err := app.applyConfig(cfg); err != nil {
		app.Close()
		return nil, &InitError{Component: "config", Err: err}
	}

	app.scripts, err = lua.NewState(lua.WithLogger(app.logger))
	if err != nil {
		app.Close()
		return nil, &InitError{Component: "lua", Err: err}
	}
	app.scripts.OpenCaret(lua.Bindings{
		Host:      app.area,
		AutoClose: app.autoClose,
		GoToLine:  app.goToLine,
	})
	app.runInitScript()

	return app, nil
}

// pluginEvent reports plugins that failed to attach.
func (app *Application) pluginEvent(ev plugin.ManagerEvent) {
	if ev.Type == plugin.EventAttachFailed {
		app.message = fmt.Sprintf("plugin %s not loaded: %v", ev.Plugin, ev.Error)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Default(), err
	}
	return cfg, nil
}

// initLogger builds the logger. The terminal owns stderr, so without a
// log file output is discarded.
func (app *Application) initLogger(cfg config.Config) error {
	if app.opts.Logger != nil {
		app.logger = app.opts.Logger
		return nil
	}

	var out io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}
	app.logger = logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: out,
		Prefix: "caretkit",
	})
	return nil
}

func openDocument(path string) (*buffer.Buffer, error) {
	if path == "" {
		return buffer.NewBuffer(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return buffer.NewBuffer(), nil
	}
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	buf, err := buffer.NewBufferFromReader(f)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	return buf, nil
}

// applyConfig pushes cfg into the plugins, the renderer and the logger.
// Nothing changes unless every setting is usable.
func (app *Application) applyConfig(cfg config.Config) error {
	table, err := cfg.PairTable()
	if err != nil {
		return fmt.Errorf("pairs: %w", err)
	}
	colors, err := cfg.Theme.Colors()
	if err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if _, err := cfg.Chord(); err != nil {
		return fmt.Errorf("goto_line.chord: %w", err)
	}

	app.autoClose.SetTable(table)
	_ = app.goToLine.SetChord(cfg.GoToLine.Chord) // parsed above
	app.goToLine.SetChordEnabled(cfg.GoToLine.Enabled)
	app.renderer.SetStyles(backend.NewStyles(colors))

	level := cfg.LogLevel()
	if l, ok := logging.ParseLevel(app.opts.LogLevel); ok {
		level = l
	}
	app.logger.SetLevel(level)

	app.cfg = cfg
	return nil
}

// runInitScript runs init.lua beside the settings file. Script errors are
// reported on the status line and do not stop the editor.
func (app *Application) runInitScript() {
	path := app.initScriptPath()
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := app.scripts.DoFile(path); err != nil {
		app.logger.Error("%s: %v", path, err)
		app.message = InitScript + ": " + err.Error()
		return
	}
	app.logger.Debug("ran %s", path)
}

func (app *Application) initScriptPath() string {
	if app.opts.ConfigPath == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(app.opts.ConfigPath), InitScript)
}

// Close releases the scripting state and the log file. It is safe to
// call more than once.
func (app *Application) Close() {
	app.closeOnce.Do(func() {
		if app.scripts != nil {
			_ = app.scripts.Close()
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool { return app.running.Load() }

// Area returns the text area being edited.
func (app *Application) Area() *host.TextArea { return app.area }

// Config returns the settings in effect.
func (app *Application) Config() config.Config { return app.cfg }

// AutoClose returns the auto-close plugin.
func (app *Application) AutoClose() *autoclose.Plugin { return app.autoClose }

// GoToLine returns the go-to-line plugin.
func (app *Application) GoToLine() *gotoline.Plugin { return app.goToLine }

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger { return app.logger }

// Modified reports whether the document changed since it was opened or
// last saved.
func (app *Application) Modified() bool {
	return app.area.Buffer().RevisionID() != app.savedRev
}

// Message returns the transient status message, if any.
func (app *Application) Message() string { return app.message }
