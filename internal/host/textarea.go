// Package host implements an in-memory text area that plugins attach to.
//
// TextArea is the single-owner model behind the terminal front-end: a
// buffer, a selection, a scroll offset and two listener lists. It is not
// safe for concurrent use; the event loop owns it.
package host

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/engine/cursor"
	"github.com/dshills/caretkit/internal/engine/history"
	"github.com/dshills/caretkit/internal/input/key"
	"github.com/dshills/caretkit/internal/location"
	"github.com/dshills/caretkit/internal/logging"
	"github.com/dshills/caretkit/internal/plugin"
)

// TerminalMetrics are the metrics of a character-cell surface, where the
// scroll offset is measured in rows.
var TerminalMetrics = location.Metrics{FontSize: 1, LineHeight: 1}

// TextArea is an editable text surface implementing plugin.Host.
type TextArea struct {
	id      string
	buf     *buffer.Buffer
	sel     cursor.Selection
	scroll  float64
	metrics location.Metrics
	focused bool
	history *history.History

	inputListeners []listener[plugin.InputHandler]
	keyListeners   []listener[plugin.KeyHandler]

	logger *logging.Logger
}

type listener[F any] struct {
	id string
	fn F
}

// Option configures a TextArea.
type Option func(*TextArea)

// WithMetrics sets the text metrics used for scroll computations.
func WithMetrics(m location.Metrics) Option {
	return func(t *TextArea) { t.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *TextArea) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTextArea returns a focused text area over buf with the caret at 0.
// A nil buf starts empty.
func NewTextArea(buf *buffer.Buffer, opts ...Option) *TextArea {
	if buf == nil {
		buf = buffer.NewBuffer()
	}
	t := &TextArea{
		id:      uuid.NewString(),
		buf:     buf,
		metrics: TerminalMetrics,
		focused: true,
		history: history.NewHistory(0),
		logger:  logging.Null,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.WithComponent("host").WithField("host", t.id[:8])
	return t
}

// Attach wires p to the text area.
func (t *TextArea) Attach(p plugin.Plugin) error {
	if err := p.Attach(t); err != nil {
		return fmt.Errorf("attach %s: %w", p.Name(), err)
	}
	t.logger.Debug("attached %s", p.Name())
	return nil
}

func (t *TextArea) ID() string                  { return t.id }
func (t *TextArea) Buffer() *buffer.Buffer      { return t.buf }
func (t *TextArea) Snapshot() *buffer.Snapshot  { return t.buf.Snapshot() }
func (t *TextArea) Text() string                { return t.buf.Text() }
func (t *TextArea) Selection() cursor.Selection { return t.sel }
func (t *TextArea) ScrollTop() float64          { return t.scroll }
func (t *TextArea) Metrics() location.Metrics   { return t.metrics }
func (t *TextArea) Focus()                      { t.focused = true }
func (t *TextArea) Blur()                       { t.focused = false }
func (t *TextArea) Focused() bool               { return t.focused }

// SetSelection replaces the selection, clamped to the text.
func (t *TextArea) SetSelection(sel cursor.Selection) {
	t.sel = sel.Clamp(t.buf.Len())
}

// SetScrollTop sets the scroll offset; negative values clamp to zero.
func (t *TextArea) SetScrollTop(top float64) {
	t.scroll = max(0, top)
}

// ApplyEdit applies edit to the buffer and carries the selection along.
// The edit is recorded for undo.
func (t *TextArea) ApplyEdit(edit buffer.Edit) (buffer.EditResult, error) {
	return t.apply(edit, func(res buffer.EditResult) cursor.Selection {
		return cursor.TransformApplied(t.sel, res)
	})
}

// ApplyEditSelect applies edit and then sets sel, clamped to the new text.
// Undo restores the selection from before the edit; redo restores sel.
func (t *TextArea) ApplyEditSelect(edit buffer.Edit, sel cursor.Selection) (buffer.EditResult, error) {
	return t.apply(edit, func(buffer.EditResult) cursor.Selection {
		return sel.Clamp(t.buf.Len())
	})
}

func (t *TextArea) apply(edit buffer.Edit, after func(buffer.EditResult) cursor.Selection) (buffer.EditResult, error) {
	before := t.sel
	res, err := t.buf.ApplyEdit(edit)
	if err != nil {
		return res, err
	}
	t.sel = after(res)
	t.record(res, before, false)
	return res, nil
}

// SetText replaces the whole text and resets the caret, scroll and undo
// history.
func (t *TextArea) SetText(s string) {
	t.buf.SetText(s)
	t.sel = cursor.NewCursorSelection(0)
	t.scroll = 0
	t.history.Clear()
}

func (t *TextArea) record(res buffer.EditResult, before cursor.Selection, typing bool) {
	inserted, err := t.buf.TextRange(res.NewRange.Start, res.NewRange.End)
	if err != nil {
		t.logger.Warn("not recording edit %s: %v", res.NewRange, err)
		return
	}
	op := history.NewOperation(res, inserted, before, t.sel)
	op.Typing = typing && utf8.RuneCountInString(inserted) == 1
	t.history.Push(op)
}

// Undo reverts the last edit and restores the selection it was made from.
// It returns history.ErrNothingToUndo when there is nothing to revert.
func (t *TextArea) Undo() error {
	sel, err := t.history.Undo(t.buf)
	if err != nil {
		return err
	}
	t.sel = sel.Clamp(t.buf.Len())
	return nil
}

// Redo re-applies the last undone edit.
// It returns history.ErrNothingToRedo when there is nothing to re-apply.
func (t *TextArea) Redo() error {
	sel, err := t.history.Redo(t.buf)
	if err != nil {
		return err
	}
	t.sel = sel.Clamp(t.buf.Len())
	return nil
}

// OnBeforeInput registers fn for pending insertions.
func (t *TextArea) OnBeforeInput(fn plugin.InputHandler) plugin.Subscription {
	l := listener[plugin.InputHandler]{id: uuid.NewString(), fn: fn}
	t.inputListeners = append(t.inputListeners, l)
	return &subscription{id: l.id, cancel: func() {
		t.inputListeners = slices.DeleteFunc(t.inputListeners, func(x listener[plugin.InputHandler]) bool {
			return x.id == l.id
		})
	}}
}

// OnKeyDown registers fn for key presses.
func (t *TextArea) OnKeyDown(fn plugin.KeyHandler) plugin.Subscription {
	l := listener[plugin.KeyHandler]{id: uuid.NewString(), fn: fn}
	t.keyListeners = append(t.keyListeners, l)
	return &subscription{id: l.id, cancel: func() {
		t.keyListeners = slices.DeleteFunc(t.keyListeners, func(x listener[plugin.KeyHandler]) bool {
			return x.id == l.id
		})
	}}
}

// Type inserts text at the selection, replacing it, unless a before-input
// listener prevents the default. The caret ends after the inserted text.
func (t *TextArea) Type(text string) error {
	if text == "" {
		return nil
	}
	ev := &plugin.InputEvent{Text: text}
	for _, l := range slices.Clone(t.inputListeners) {
		l.fn(ev)
	}
	if ev.DefaultPrevented() {
		return nil
	}

	before := t.sel
	res, err := t.buf.ApplyEdit(buffer.NewEdit(before.Range(), text))
	if err != nil {
		return fmt.Errorf("type %q: %w", text, err)
	}
	t.sel = cursor.NewCursorSelection(res.NewRange.End)
	t.record(res, before, true)
	return nil
}

// Press delivers a key press to key-down listeners and then performs the
// default editing behaviour for it unless a listener prevented it.
// Listeners may reshape the selection the default acts on; a deletion is
// still recorded as made from the selection the key was pressed at.
func (t *TextArea) Press(ev key.Event) error {
	pressed := t.sel
	kev := &plugin.KeyEvent{Event: ev}
	for _, l := range slices.Clone(t.keyListeners) {
		l.fn(kev)
	}
	if kev.DefaultPrevented() {
		return nil
	}
	return t.defaultKey(ev, pressed)
}

var (
	undoKey = key.NewRuneEvent('z', key.ModCtrl)
	redoKey = key.NewRuneEvent('y', key.ModCtrl)
)

func (t *TextArea) defaultKey(ev key.Event, pressed cursor.Selection) error {
	switch {
	case ev.Matches(redoKey):
		return ignoreEmpty(t.Redo())
	case ev.Matches(undoKey):
		// Ctrl+Shift+Z redoes.
		if ev.Modifiers.Has(key.ModShift) {
			return ignoreEmpty(t.Redo())
		}
		return ignoreEmpty(t.Undo())
	}

	extend := ev.Modifiers.Has(key.ModShift)
	switch ev.Key {
	case key.KeyRune:
		if ev.IsChar() {
			return t.Type(string(ev.Rune))
		}
	case key.KeyEnter:
		return t.Type("\n")
	case key.KeyTab:
		if ev.Modifiers == key.ModNone {
			return t.Type("\t")
		}
	case key.KeyBackspace:
		return t.deleteBackward(pressed)
	case key.KeyDelete:
		return t.deleteForward(pressed)
	case key.KeyLeft:
		t.moveHorizontal(-1, extend)
	case key.KeyRight:
		t.moveHorizontal(1, extend)
	case key.KeyUp:
		t.moveVertical(-1, extend)
	case key.KeyDown:
		t.moveVertical(1, extend)
	case key.KeyHome:
		p := t.buf.OffsetToPoint(t.sel.Head)
		t.moveTo(t.buf.LineStart(p.Line), extend)
	case key.KeyEnd:
		p := t.buf.OffsetToPoint(t.sel.Head)
		t.moveTo(t.buf.LineStart(p.Line)+t.buf.LineLen(p.Line), extend)
	}
	return nil
}

func (t *TextArea) deleteBackward(before cursor.Selection) error {
	r := t.sel.Range()
	if r.IsEmpty() {
		if r.Start == 0 {
			return nil
		}
		r.Start--
	}
	return t.deleteRange(r, before)
}

func (t *TextArea) deleteForward(before cursor.Selection) error {
	r := t.sel.Range()
	if r.IsEmpty() {
		if r.End >= t.buf.Len() {
			return nil
		}
		r.End++
	}
	return t.deleteRange(r, before)
}

// deleteRange removes r and records the edit as made from before.
func (t *TextArea) deleteRange(r buffer.Range, before cursor.Selection) error {
	res, err := t.buf.ApplyEdit(buffer.NewEdit(r, ""))
	if err != nil {
		return fmt.Errorf("delete %s: %w", r, err)
	}
	t.sel = cursor.NewCursorSelection(r.Start)
	t.record(res, before, false)
	return nil
}

// ignoreEmpty drops the error for an undo or redo with nothing to do.
func ignoreEmpty(err error) error {
	if errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo) {
		return nil
	}
	return err
}

func (t *TextArea) moveHorizontal(delta int, extend bool) {
	if !extend && !t.sel.IsEmpty() {
		if delta < 0 {
			t.sel = t.sel.CollapseToStart()
		} else {
			t.sel = t.sel.CollapseToEnd()
		}
		return
	}
	t.moveTo(t.sel.Head+delta, extend)
}

func (t *TextArea) moveVertical(delta int, extend bool) {
	p := t.buf.OffsetToPoint(t.sel.Head)
	line := p.Line + delta
	if line < 0 || line >= t.buf.LineCount() {
		return
	}
	col := min(p.Column, t.buf.LineLen(line))
	t.moveTo(t.buf.LineStart(line)+col, extend)
}

func (t *TextArea) moveTo(offset buffer.Offset, extend bool) {
	offset = min(max(offset, 0), t.buf.Len())
	if extend {
		t.sel = t.sel.Extend(offset)
	} else {
		t.sel = t.sel.MoveTo(offset)
	}
}

// CaretPoint returns the 0-based line and column of the selection head.
func (t *TextArea) CaretPoint() buffer.Point {
	return t.buf.OffsetToPoint(t.sel.Head)
}

type subscription struct {
	id       string
	cancel   func()
	canceled bool
}

func (s *subscription) ID() string { return s.id }

// Cancel removes the listener. Further calls are no-ops.
func (s *subscription) Cancel() {
	if s.canceled {
		return
	}
	s.canceled = true
	s.cancel()
}
