package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"

	"github.com/dshills/caretkit/internal/input/key"
	"github.com/dshills/caretkit/internal/renderer"
	"github.com/dshills/caretkit/internal/renderer/backend"
)

// Application key bindings. They are checked before the dialog and the
// text area see a key.
var (
	quitKey = key.NewRuneEvent('q', key.ModCtrl)
	saveKey = key.NewRuneEvent('s', key.ModCtrl)
)

// quitRequest is posted to the event loop when the run context ends.
type quitRequest struct{}

// Run draws the document and processes events until Ctrl+Q, the context
// is cancelled or the terminal shuts down. The settings file is watched
// for the duration.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = app.term.PostInterrupt(quitRequest{})
		case <-stop:
		}
	}()

	if w := app.watchConfig(); w != nil {
		defer w.Close()
	}

	return app.eventLoop()
}

func (app *Application) eventLoop() error {
	app.Draw()
	for {
		ev, ok := app.term.PollEvent()
		if !ok {
			return nil
		}

		err := app.HandleEvent(ev)
		var perr *RecoveredPanicError
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case errors.As(err, &perr):
			app.logger.Error("%v", perr)
			app.message = fmt.Sprintf("internal error: %v", perr.Value)
		case err != nil:
			return err
		}
		app.Draw()
	}
}

// HandleEvent processes one terminal event. It returns ErrQuit when the
// application should exit. Panics are recovered into RecoveredPanicError.
func (app *Application) HandleEvent(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev.Key)
	case backend.EventPaste:
		app.handlePaste(ev.Start)
	case backend.EventResize:
		app.term.Sync()
		app.scrollToCaret()
	case backend.EventFocus:
		if ev.Focused {
			app.area.Focus()
		} else {
			app.area.Blur()
		}
	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Data)
	}
	return nil
}

func (app *Application) handleInterrupt(data any) error {
	switch d := data.(type) {
	case quitRequest:
		return ErrQuit
	case configChanged:
		app.reloadConfig(d)
	}
	return nil
}

func (app *Application) handleKey(ev key.Event) error {
	if app.paste != nil {
		app.collectPaste(ev)
		return nil
	}
	app.message = ""

	switch {
	case ev.Matches(quitKey):
		return ErrQuit
	case ev.Matches(saveKey):
		if err := app.Save(); err != nil {
			app.logger.Error("%v", err)
			app.message = err.Error()
		} else {
			app.message = "saved " + filepath.Base(app.path)
		}
		return nil
	}

	// An open prompt takes every key until it closes.
	if d, ok := app.goToLine.OpenDialog(app.area); ok {
		d.HandleKey(ev)
	} else if err := app.area.Press(ev); err != nil {
		app.logger.Error("key %v: %v", ev, err)
		app.message = err.Error()
	}
	app.scrollToCaret()
	return nil
}

func (app *Application) handlePaste(start bool) {
	if start {
		app.paste = []rune{}
		return
	}
	text := string(app.paste)
	app.paste = nil
	if text == "" {
		return
	}

	if d, ok := app.goToLine.OpenDialog(app.area); ok {
		d.SetQuery(d.Query() + text)
		return
	}
	if err := app.area.Type(text); err != nil {
		app.logger.Error("paste: %v", err)
		app.message = err.Error()
	}
	app.scrollToCaret()
}

func (app *Application) collectPaste(ev key.Event) {
	switch {
	case ev.IsChar():
		app.paste = append(app.paste, ev.Rune)
	case ev.Is(key.KeyEnter):
		app.paste = append(app.paste, '\n')
	case ev.Is(key.KeyTab):
		app.paste = append(app.paste, '\t')
	}
}

// scrollToCaret adjusts the scroll offset so the caret's line is within
// the document rows.
func (app *Application) scrollToCaret() {
	rows := app.renderer.TextRows()
	if rows <= 0 {
		return
	}
	line := app.area.CaretPoint().Line
	top := renderer.TopLine(app.area)
	switch {
	case line < top:
		top = line
	case line >= top+rows:
		top = line - rows + 1
	default:
		return
	}
	app.area.SetScrollTop(float64(top) * app.area.Metrics().LineHeight)
}

// Draw renders the current state.
func (app *Application) Draw() {
	f := renderer.Frame{Doc: app.area, Status: app.StatusLine()}
	if d, ok := app.goToLine.OpenDialog(app.area); ok {
		f.Prompt = d
	}
	app.renderer.Render(f)
}

// StatusLine describes the document and caret, followed by any message.
func (app *Application) StatusLine() string {
	name := "[scratch]"
	if app.path != "" {
		name = filepath.Base(app.path)
	}
	if app.Modified() {
		name += " [+]"
	}
	p := app.area.CaretPoint()
	s := fmt.Sprintf("%s  %d:%d", name, p.Line+1, p.Column+1)
	if app.message != "" {
		s += "  " + app.message
	}
	return s
}
