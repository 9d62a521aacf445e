package plugin

import (
	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/engine/cursor"
	"github.com/dshills/caretkit/internal/input/key"
	"github.com/dshills/caretkit/internal/location"
)

// Plugin is a behaviour that can be attached to a Host.
type Plugin interface {
	// Name identifies the plugin; it must be stable and unique per host.
	Name() string

	// Attach wires the plugin to h. It is called once per host.
	Attach(h Host) error
}

// Host is the text-area surface plugins operate on.
type Host interface {
	// ID uniquely identifies the host for the lifetime of the process.
	ID() string

	// Snapshot returns an immutable view of the current text.
	Snapshot() *buffer.Snapshot

	// ApplyEdit changes the text; the selection follows the edit.
	ApplyEdit(edit buffer.Edit) (buffer.EditResult, error)

	// ApplyEditSelect changes the text and then sets sel, as one undo step.
	ApplyEditSelect(edit buffer.Edit, sel cursor.Selection) (buffer.EditResult, error)

	Selection() cursor.Selection
	SetSelection(sel cursor.Selection)

	// ScrollTop is the vertical scroll offset in Metrics units.
	ScrollTop() float64
	SetScrollTop(top float64)

	Metrics() location.Metrics

	Focus()
	Blur()
	Focused() bool

	// OnBeforeInput registers fn for pending text insertions.
	OnBeforeInput(fn InputHandler) Subscription

	// OnKeyDown registers fn for key presses.
	OnKeyDown(fn KeyHandler) Subscription
}

// Subscription is a registered listener.
type Subscription interface {
	ID() string
	Cancel()
}

// InputHandler receives pending insertions.
type InputHandler func(ev *InputEvent)

// KeyHandler receives key presses.
type KeyHandler func(ev *KeyEvent)

// InputEvent describes text about to be inserted at the selection. Text is
// a single character for keystrokes and longer for pastes or composed input.
type InputEvent struct {
	Text      string
	prevented bool
}

// PreventDefault suppresses the host's insertion.
func (e *InputEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *InputEvent) DefaultPrevented() bool { return e.prevented }

// KeyEvent is a key press delivered to the host.
type KeyEvent struct {
	key.Event
	prevented bool
}

// PreventDefault suppresses the host's handling of the key.
func (e *KeyEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *KeyEvent) DefaultPrevented() bool { return e.prevented }
