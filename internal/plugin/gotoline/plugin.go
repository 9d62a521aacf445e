// Package gotoline adds a "go to line[:column]" prompt to a host.
//
// The prompt opens on a key chord (Ctrl+G by default) or programmatically
// through ShowPrompt. Each host gets one Dialog, created on first use and
// reused afterwards.
package gotoline

import (
	"fmt"

	"github.com/dshills/caretkit/internal/engine/cursor"
	"github.com/dshills/caretkit/internal/input/key"
	"github.com/dshills/caretkit/internal/location"
	"github.com/dshills/caretkit/internal/logging"
	"github.com/dshills/caretkit/internal/plugin"
)

const (
	// Name is the plugin name.
	Name = "gotoline"

	// DefaultChord opens the prompt.
	DefaultChord = "Ctrl+G"
)

// Plugin is the go-to-line behaviour.
type Plugin struct {
	chord   key.Event
	enabled bool
	dialogs map[string]*Dialog
	subs    map[string]plugin.Subscription // by host ID
	logger  *logging.Logger
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithChord sets the key chord that opens the prompt.
func WithChord(chord key.Event) Option {
	return func(p *Plugin) { p.chord = chord }
}

// WithChordEnabled controls whether the chord is intercepted at all. When
// disabled the prompt is only reachable through ShowPrompt.
func WithChordEnabled(enabled bool) Option {
	return func(p *Plugin) { p.enabled = enabled }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Plugin) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a plugin bound to DefaultChord.
func New(opts ...Option) *Plugin {
	p := &Plugin{
		chord:   key.MustParse(DefaultChord),
		enabled: true,
		dialogs: make(map[string]*Dialog),
		subs:    make(map[string]plugin.Subscription),
		logger:  logging.Null,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithComponent(Name)
	return p
}

// Name returns "gotoline".
func (p *Plugin) Name() string { return Name }

// Chord returns the opening chord.
func (p *Plugin) Chord() key.Event { return p.chord }

// SetChord parses spec and makes it the opening chord.
func (p *Plugin) SetChord(spec string) error {
	chord, err := key.Parse(spec)
	if err != nil {
		return fmt.Errorf("go-to-line chord: %w", err)
	}
	p.chord = chord
	return nil
}

// ChordEnabled reports whether the chord opens the prompt.
func (p *Plugin) ChordEnabled() bool { return p.enabled }

// SetChordEnabled turns chord handling on or off.
func (p *Plugin) SetChordEnabled(enabled bool) { p.enabled = enabled }

// Attach listens for the opening chord on h.
func (p *Plugin) Attach(h plugin.Host) error {
	if old, ok := p.subs[h.ID()]; ok {
		old.Cancel()
	}
	p.subs[h.ID()] = h.OnKeyDown(func(ev *plugin.KeyEvent) {
		if !p.enabled || !ev.Matches(p.chord) {
			return
		}
		ev.PreventDefault()
		p.ShowPrompt(h)
	})
	return nil
}

// Detach stops listening for the chord on h, closes h's dialog if it is
// open and drops it from the cache.
func (p *Plugin) Detach(h plugin.Host) {
	if sub, ok := p.subs[h.ID()]; ok {
		sub.Cancel()
		delete(p.subs, h.ID())
	}
	if d, ok := p.dialogs[h.ID()]; ok {
		d.Cancel()
		delete(p.dialogs, h.ID())
	}
}

// ShowPrompt opens h's dialog and returns it.
func (p *Plugin) ShowPrompt(h plugin.Host) *Dialog {
	d := p.dialogFor(h)
	d.Show()
	return d
}

// Dialog returns h's dialog if one has been created.
func (p *Plugin) Dialog(h plugin.Host) (*Dialog, bool) {
	d, ok := p.dialogs[h.ID()]
	return d, ok
}

// OpenDialog returns h's dialog if it is currently open.
func (p *Plugin) OpenDialog(h plugin.Host) (*Dialog, bool) {
	d, ok := p.dialogs[h.ID()]
	if !ok || !d.Visible() {
		return nil, false
	}
	return d, true
}

func (p *Plugin) dialogFor(h plugin.Host) *Dialog {
	d, ok := p.dialogs[h.ID()]
	if !ok {
		d = newDialog(p, h)
		p.dialogs[h.ID()] = d
	}
	return d
}

// GoTo moves h's caret to line:column (column 0 meaning the first
// non-whitespace character), scrolls so a few lines of context remain
// above it and focuses h. It reports whether the jump happened; out of
// range targets leave h untouched.
func (p *Plugin) GoTo(h plugin.Host, line, column int) bool {
	loc, err := location.Resolve(h.Snapshot(), line, column, h.Metrics())
	if err != nil {
		p.logger.Debug("go to %d:%d: %v", line, column, err)
		return false
	}

	h.SetScrollTop(loc.ScrollOffset)
	h.SetSelection(cursor.NewCursorSelection(loc.Offset))
	h.Focus()
	p.logger.WithField("offset", loc.Offset).Info("jumped to %d:%d", line, column)
	return true
}
