// Package autoclose pairs brackets and quotes as they are typed.
//
// Typing an opener inserts its closer after the caret; retyping a closer
// that already sits at the caret steps over it; Backspace between an empty
// pair removes both characters.
package autoclose

import (
	"github.com/dshills/caretkit/internal/engine/cursor"
	"github.com/dshills/caretkit/internal/input/key"
	"github.com/dshills/caretkit/internal/logging"
	"github.com/dshills/caretkit/internal/pairs"
	"github.com/dshills/caretkit/internal/plugin"
)

// Name is the plugin name.
const Name = "autoclose"

// Plugin is the auto-close brackets behaviour.
type Plugin struct {
	matcher *pairs.Matcher
	subs    map[string][]plugin.Subscription // by host ID
	logger  *logging.Logger
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithTable sets the pair table.
func WithTable(t pairs.Table) Option {
	return func(p *Plugin) { p.matcher = pairs.NewMatcher(t) }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Plugin) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a plugin using the default pairs unless WithTable is given.
func New(opts ...Option) *Plugin {
	p := &Plugin{
		matcher: pairs.NewMatcher(pairs.DefaultTable()),
		subs:    make(map[string][]plugin.Subscription),
		logger:  logging.Null,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithComponent(Name)
	return p
}

// Name returns "autoclose".
func (p *Plugin) Name() string { return Name }

// Table returns the active pair table.
func (p *Plugin) Table() pairs.Table { return p.matcher.Table() }

// SetTable swaps the pair table. Hosts already attached pick it up on
// their next keystroke.
func (p *Plugin) SetTable(t pairs.Table) {
	p.matcher = pairs.NewMatcher(t)
	p.logger.Info("pair table updated: %d pairs", t.Len())
}

// Attach subscribes to h's before-input and key-down notifications.
func (p *Plugin) Attach(h plugin.Host) error {
	input := h.OnBeforeInput(func(ev *plugin.InputEvent) { p.beforeInput(h, ev) })
	keys := h.OnKeyDown(func(ev *plugin.KeyEvent) {
		if ev.Is(key.KeyBackspace) {
			p.backspace(h)
		}
	})
	p.subs[h.ID()] = append(p.subs[h.ID()], input, keys)
	return nil
}

// Detach removes the plugin's listeners from h. Detaching a host the
// plugin is not attached to does nothing.
func (p *Plugin) Detach(h plugin.Host) {
	for _, sub := range p.subs[h.ID()] {
		sub.Cancel()
	}
	delete(p.subs, h.ID())
}

func (p *Plugin) beforeInput(h plugin.Host, ev *plugin.InputEvent) {
	if ev.DefaultPrevented() {
		return
	}
	sel := h.Selection()
	// A typed character replaces a selection; leave that to the host.
	if !sel.IsEmpty() {
		return
	}

	action := p.matcher.OnInsert(h.Snapshot(), sel.Head, ev.Text)
	if !action.Handled() {
		return
	}
	ev.PreventDefault()

	caret := cursor.NewCursorSelection(action.Caret)
	if action.Edit.IsNoOp() {
		h.SetSelection(caret)
	} else if _, err := h.ApplyEditSelect(action.Edit, caret); err != nil {
		p.logger.Error("%s: %v", action.Kind, err)
		return
	}
	p.logger.Debug("%s", action)
}

// backspace widens a collapsed caret between an empty pair to cover both
// characters, so the host's own deletion removes the pair.
func (p *Plugin) backspace(h plugin.Host) {
	action := p.matcher.OnBackspace(h.Snapshot(), h.Selection())
	if action.Kind != pairs.DeleteRange {
		return
	}
	r := action.Edit.Range
	h.SetSelection(cursor.NewSelection(r.Start, r.End))
	p.logger.Debug("%s", action)
}
