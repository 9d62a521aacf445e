package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caretkit/internal/input/key"
)

// EventType identifies the kind of Event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventPaste
	EventFocus
	EventInterrupt
)

// Event is a terminal event translated out of tcell.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Start is true for the opening marker of a bracketed paste.
	Start bool

	// Focused is set for EventFocus.
	Focused bool

	// Data carries the value posted with PostInterrupt.
	Data any
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKey(e)
		if !ok {
			return Event{Type: EventNone}
		}
		return Event{Type: EventKey, Key: k}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventPaste:
		return Event{Type: EventPaste, Start: e.Start()}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}

	default:
		return Event{Type: EventNone}
	}
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// convertKey converts a tcell key press to a key.Event. Control keys that
// tcell reports as KeyCtrlA..KeyCtrlZ become the lower-case letter with
// Ctrl held, so they match chords such as "Ctrl+G".
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyBacktab {
		mods = mods.With(key.ModShift)
	}
	if sk, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(sk, mods), true
	}

	switch {
	case k == tcell.KeyRune:
		return key.NewRuneEvent(e.Rune(), mods), true
	case k == tcell.KeyCtrlSpace:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)), true
	case k > tcell.KeyNUL && k < tcell.KeyESC:
		// Raw C0 control codes not normalised by tcell.
		return key.NewRuneEvent('a'+rune(k-tcell.KeySOH), mods.With(key.ModCtrl)), true
	default:
		return key.Event{}, false
	}
}

// convertMod converts tcell modifier mask to key.Modifier.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}

// convertToTcell converts a key.Event back to a tcell event; it is the
// inverse of convertKey for the keys convertKey produces.
func convertToTcell(ev key.Event) *tcell.EventKey {
	var mods tcell.ModMask
	if ev.Modifiers.Has(key.ModShift) {
		mods |= tcell.ModShift
	}
	if ev.Modifiers.Has(key.ModCtrl) {
		mods |= tcell.ModCtrl
	}
	if ev.Modifiers.Has(key.ModAlt) {
		mods |= tcell.ModAlt
	}
	if ev.Modifiers.Has(key.ModMeta) {
		mods |= tcell.ModMeta
	}

	if ev.Key == key.KeyRune {
		return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mods)
	}
	for tk, k := range specialKeys {
		if k == ev.Key && tk != tcell.KeyBacktab && tk != tcell.KeyBackspace2 {
			return tcell.NewEventKey(tk, 0, mods)
		}
	}
	return tcell.NewEventKey(tcell.KeyRune, 0, mods)
}
