package gotoline

import (
	"github.com/dshills/caretkit/internal/input/key"
	"github.com/dshills/caretkit/internal/location"
	"github.com/dshills/caretkit/internal/plugin"
)

// Placeholder is shown in an empty prompt.
const Placeholder = "Line:Column / Line no. then Enter"

// State is the visibility state of a Dialog.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Dialog is the go-to-line prompt of one host. While open it owns
// keyboard focus: the host is blurred and keys are delivered through
// HandleKey.
type Dialog struct {
	plugin *Plugin
	host   plugin.Host

	state State
	input []rune
	err   error
}

func newDialog(p *Plugin, h plugin.Host) *Dialog {
	return &Dialog{plugin: p, host: h}
}

// Show opens the dialog with an empty query and takes focus from the host.
// Showing an open dialog clears it.
func (d *Dialog) Show() {
	d.state = StateOpen
	d.input = d.input[:0]
	d.err = nil
	d.host.Blur()
}

// State returns the dialog's state.
func (d *Dialog) State() State { return d.state }

// Visible reports whether the dialog is open.
func (d *Dialog) Visible() bool { return d.state == StateOpen }

// Query returns the current input text.
func (d *Dialog) Query() string { return string(d.input) }

// Invalid reports whether the error indicator is active.
func (d *Dialog) Invalid() bool { return d.err != nil }

// Err returns the reason the query is invalid, or nil.
func (d *Dialog) Err() error { return d.err }

// Placeholder returns the hint shown while the query is empty.
func (d *Dialog) Placeholder() string { return Placeholder }

// HandleKey processes a key press while the dialog is open and reports
// whether the dialog consumed it. A closed dialog consumes nothing; an open
// one consumes every key.
func (d *Dialog) HandleKey(ev key.Event) bool {
	if d.state != StateOpen {
		return false
	}

	switch {
	case ev.Matches(d.plugin.chord):
		// Swallowed so the chord cannot reach anything behind the prompt.
	case ev.Is(key.KeyEscape):
		d.Cancel()
	case ev.Is(key.KeyEnter):
		d.Submit()
	case ev.Is(key.KeyBackspace):
		if n := len(d.input); n > 0 {
			d.input = d.input[:n-1]
		}
		d.validate()
	case ev.IsChar():
		d.input = append(d.input, ev.Rune)
		d.validate()
	}
	return true
}

// SetQuery replaces the input text and re-validates it.
func (d *Dialog) SetQuery(text string) {
	d.input = append(d.input[:0], []rune(text)...)
	d.validate()
}

// Submit jumps to the query and closes the dialog. It does nothing while
// the error indicator is active. An empty query closes without jumping.
func (d *Dialog) Submit() {
	if d.state != StateOpen {
		return
	}
	q := d.validate()
	if d.err != nil {
		return
	}
	if !q.Empty {
		d.plugin.GoTo(d.host, q.Line, q.Column)
	}
	d.Cancel()
}

// Cancel closes the dialog and returns focus to the host.
func (d *Dialog) Cancel() {
	if d.state != StateOpen {
		return
	}
	d.state = StateClosed
	d.host.Focus()
}

func (d *Dialog) validate() location.Query {
	q, err := location.ParseQuery(string(d.input))
	if err == nil {
		err = q.Validate(d.host.Snapshot())
	}
	d.err = err
	return q
}
