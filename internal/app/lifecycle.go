package app

import (
	"errors"
	"os"

	"github.com/dshills/caretkit/internal/config"
	"github.com/dshills/caretkit/internal/config/watcher"
)

// Save writes the document to its path using its original line endings.
func (app *Application) Save() error {
	if app.path == "" {
		return &FileError{Op: "save", Err: ErrNoFilePath}
	}

	buf := app.area.Buffer()
	rev := buf.RevisionID()

	f, err := os.Create(app.path)
	if err != nil {
		return &FileError{Op: "save", Path: app.path, Err: err}
	}
	if _, err := buf.WriteTo(f); err != nil {
		_ = f.Close()
		return &FileError{Op: "save", Path: app.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Op: "save", Path: app.path, Err: err}
	}

	app.savedRev = rev
	app.logger.Info("saved %s", app.path)
	return nil
}

// configChanged is posted to the event loop when the settings file changes.
type configChanged struct {
	watcher.Event
}

// watchConfig starts watching the settings file and forwards changes to
// the event loop, which owns every object a reload touches. It returns nil
// when there is nothing to watch.
func (app *Application) watchConfig() *watcher.Watcher {
	if app.opts.ConfigPath == "" {
		return nil
	}
	w, err := watcher.New(app.opts.ConfigPath)
	if err != nil {
		app.logger.Warn("watching %s: %v", app.opts.ConfigPath, err)
		return nil
	}

	go func() {
		events, errs := w.Events(), w.Errors()
		for events != nil || errs != nil {
			select {
			case ev, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				if err := app.term.PostInterrupt(configChanged{ev}); err != nil {
					app.logger.Warn("queue reload: %v", err)
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				app.logger.Warn("config watcher: %v", err)
			}
		}
	}()
	return w
}

// reloadConfig re-reads the settings file and re-runs init.lua. A file
// that fails to load leaves the current settings in place.
func (app *Application) reloadConfig(ev configChanged) {
	log := app.logger.WithField("op", ev.Op)

	cfg, err := config.Load(app.opts.ConfigPath)
	if errors.Is(err, config.ErrFileNotFound) {
		log.Info("%s removed; keeping current settings", app.opts.ConfigPath)
		return
	}
	if err == nil {
		err = app.applyConfig(cfg)
	}
	if err != nil {
		log.Warn("reload: %v", err)
		app.message = "config not reloaded: " + err.Error()
		return
	}

	app.message = ""
	app.runInitScript()
	log.Info("reloaded %s", app.opts.ConfigPath)
	if app.message == "" {
		app.message = "config reloaded"
	}
}
