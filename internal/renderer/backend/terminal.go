// Package backend wraps a tcell screen: it draws styled, grapheme-aware
// text and translates terminal input into key events.
package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/caretkit/internal/input/key"
)

// Terminal draws to and reads events from a tcell screen.
type Terminal struct {
	screen   tcell.Screen
	tabWidth int
	mu       sync.Mutex
}

// DefaultTabWidth is the number of columns a tab advances to.
const DefaultTabWidth = 4

// NewTerminal creates a terminal backend on the process's tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing screen, typically a
// tcell.SimulationScreen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, tabWidth: DefaultTabWidth}
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// SetTabWidth changes the tab stop distance used by DrawText.
func (t *Terminal) SetTabWidth(w int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if w > 0 {
		t.tabWidth = w
	}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Fill paints a row segment with spaces in style.
func (t *Terminal) Fill(x, y, width int, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for col := max(x, 0); col < x+width && col < w; col++ {
		t.screen.SetContent(col, y, ' ', nil, style)
	}
}

// DrawText draws s on row y starting at column x, clipped to maxWidth
// columns. Grapheme clusters occupy their display width; tabs advance to
// the next tab stop, counted from column 0 so that a line drawn in pieces
// lines up. It returns the columns used.
func (t *Terminal) DrawText(x, y, maxWidth int, s string, style tcell.Style) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	if y < 0 || y >= h {
		return 0
	}
	limit := min(x+maxWidth, w)

	col := x
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		if runes[0] == '\t' {
			next := col + t.tabWidth - col%t.tabWidth
			for ; col < next && col < limit; col++ {
				t.screen.SetContent(col, y, ' ', nil, style)
			}
			continue
		}

		width := g.Width()
		if width == 0 {
			continue
		}
		if col+width > limit {
			break
		}
		t.screen.SetContent(col, y, runes[0], runes[1:], style)
		col += width
	}
	return col - x
}

// TextWidth returns the columns DrawText would use for s, without a limit.
func (t *Terminal) TextWidth(s string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return textWidth(s, t.tabWidth)
}

func textWidth(s string, tabWidth int) int {
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if g.Runes()[0] == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		col += g.Width()
	}
	return col
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// Sync repaints the whole screen, used after a resize.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Sync()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// PollEvent blocks for the next event. It returns false once the screen
// has been shut down.
func (t *Terminal) PollEvent() (Event, bool) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, false
	}
	return convertEvent(ev), true
}

// PostInterrupt queues data for delivery as an EventInterrupt. It is the
// way other goroutines hand work to the event loop.
func (t *Terminal) PostInterrupt(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// PostKey queues a synthetic key press.
func (t *Terminal) PostKey(ev key.Event) error {
	return t.screen.PostEvent(convertToTcell(ev))
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

func (t *Terminal) HasTrueColor() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Colors() > 256
}
