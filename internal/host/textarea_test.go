package host

import (
	"errors"
	"testing"

	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/engine/cursor"
	"github.com/dshills/caretkit/internal/engine/history"
	"github.com/dshills/caretkit/internal/input/key"
	"github.com/dshills/caretkit/internal/plugin"
)

func newArea(text string, caret int) *TextArea {
	t := NewTextArea(buffer.NewBufferFromString(text))
	t.SetSelection(cursor.NewCursorSelection(caret))
	return t
}

func press(t *testing.T, ta *TextArea, spec string) {
	t.Helper()
	if err := ta.Press(key.MustParse(spec)); err != nil {
		t.Fatalf("Press(%q) error = %v", spec, err)
	}
}

func TestTypeInsertsAtCaret(t *testing.T) {
	ta := newArea("ac", 1)
	if err := ta.Type("b"); err != nil {
		t.Fatal(err)
	}
	if ta.Text() != "abc" || ta.Selection() != cursor.NewCursorSelection(2) {
		t.Errorf("got %q %v", ta.Text(), ta.Selection())
	}
}

func TestTypeReplacesSelection(t *testing.T) {
	ta := newArea("hello world", 0)
	ta.SetSelection(cursor.NewSelection(6, 11))
	if err := ta.Type("there"); err != nil {
		t.Fatal(err)
	}
	if ta.Text() != "hello there" || ta.Selection().Head != 11 {
		t.Errorf("got %q %v", ta.Text(), ta.Selection())
	}
}

func TestBeforeInputPreventDefault(t *testing.T) {
	ta := newArea("", 0)
	var seen []string
	ta.OnBeforeInput(func(ev *plugin.InputEvent) {
		seen = append(seen, ev.Text)
		if ev.Text == "x" {
			ev.PreventDefault()
		}
	})

	_ = ta.Type("x")
	_ = ta.Type("y")
	if ta.Text() != "y" {
		t.Errorf("Text() = %q, want %q", ta.Text(), "y")
	}
	if len(seen) != 2 {
		t.Errorf("listener saw %v", seen)
	}
}

func TestSubscriptionCancel(t *testing.T) {
	ta := newArea("", 0)
	calls := 0
	sub := ta.OnKeyDown(func(*plugin.KeyEvent) { calls++ })
	if sub.ID() == "" {
		t.Error("subscription has no ID")
	}

	press(t, ta, "a")
	sub.Cancel()
	sub.Cancel()
	press(t, ta, "b")

	if calls != 1 {
		t.Errorf("listener called %d times, want 1", calls)
	}
	if ta.Text() != "ab" {
		t.Errorf("Text() = %q", ta.Text())
	}
}

func TestCancelDuringDispatch(t *testing.T) {
	ta := newArea("", 0)
	var second int
	var sub plugin.Subscription
	sub = ta.OnKeyDown(func(*plugin.KeyEvent) { sub.Cancel() })
	ta.OnKeyDown(func(*plugin.KeyEvent) { second++ })

	press(t, ta, "a")
	press(t, ta, "b")
	if second != 2 {
		t.Errorf("second listener called %d times, want 2", second)
	}
}

func TestKeyDownPreventDefault(t *testing.T) {
	ta := newArea("ab", 2)
	ta.OnKeyDown(func(ev *plugin.KeyEvent) {
		if ev.Is(key.KeyBackspace) {
			ev.PreventDefault()
		}
	})
	press(t, ta, "Backspace")
	if ta.Text() != "ab" {
		t.Errorf("Text() = %q, want unchanged", ta.Text())
	}
}

func TestDefaultKeys(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		caret     int
		keys      []string
		wantText  string
		wantCaret int
	}{
		{"backspace", "abc", 2, []string{"Backspace"}, "ac", 1},
		{"backspace at start", "abc", 0, []string{"Backspace"}, "abc", 0},
		{"delete", "abc", 1, []string{"Delete"}, "ac", 1},
		{"delete at end", "abc", 3, []string{"Delete"}, "abc", 3},
		{"enter", "ab", 1, []string{"Enter"}, "a\nb", 2},
		{"tab", "", 0, []string{"Tab"}, "\t", 1},
		{"left right", "abc", 1, []string{"Right", "Right", "Right", "Left"}, "abc", 2},
		{"left at start", "abc", 0, []string{"Left"}, "abc", 0},
		{"home end", "ab\ncdef", 4, []string{"End"}, "ab\ncdef", 7},
		{"home", "ab\ncdef", 5, []string{"Home"}, "ab\ncdef", 3},
		{"down clamps column", "abcd\nx", 3, []string{"Down"}, "abcd\nx", 6},
		{"up keeps column", "abcd\nxyz", 7, []string{"Up"}, "abcd\nxyz", 2},
		{"up on first line", "abcd", 2, []string{"Up"}, "abcd", 2},
		{"ctrl rune ignored", "ab", 1, []string{"Ctrl+X"}, "ab", 1},
		{"multibyte", "ä", 1, []string{"Backspace"}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newArea(tt.text, tt.caret)
			for _, k := range tt.keys {
				press(t, ta, k)
			}
			if ta.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", ta.Text(), tt.wantText)
			}
			if got := ta.Selection(); got != cursor.NewCursorSelection(tt.wantCaret) {
				t.Errorf("Selection() = %v, want Cursor(%d)", got, tt.wantCaret)
			}
		})
	}
}

func TestShiftExtendsSelection(t *testing.T) {
	ta := newArea("abcd", 1)
	press(t, ta, "Shift+Right")
	press(t, ta, "Shift+Right")
	if got := ta.Selection(); got != cursor.NewSelection(1, 3) {
		t.Fatalf("Selection() = %v", got)
	}
	press(t, ta, "Left")
	if got := ta.Selection(); got != cursor.NewCursorSelection(1) {
		t.Errorf("Left collapsed to %v, want Cursor(1)", got)
	}
}

func TestBackspaceDeletesSelection(t *testing.T) {
	ta := newArea("abcd", 0)
	ta.SetSelection(cursor.NewSelection(3, 1))
	press(t, ta, "Backspace")
	if ta.Text() != "ad" || ta.Selection() != cursor.NewCursorSelection(1) {
		t.Errorf("got %q %v", ta.Text(), ta.Selection())
	}
}

func TestApplyEditCarriesSelection(t *testing.T) {
	ta := newArea("world", 2)
	if _, err := ta.ApplyEdit(buffer.NewInsert(0, "hello ")); err != nil {
		t.Fatal(err)
	}
	if ta.Selection() != cursor.NewCursorSelection(8) {
		t.Errorf("Selection() = %v, want Cursor(8)", ta.Selection())
	}
	if _, err := ta.ApplyEdit(buffer.NewDelete(0, 99)); err == nil {
		t.Error("expected error for out-of-range edit")
	}
}

func TestSelectionAndScrollClamp(t *testing.T) {
	ta := newArea("abc", 0)
	ta.SetSelection(cursor.NewSelection(-2, 10))
	if ta.Selection() != cursor.NewSelection(0, 3) {
		t.Errorf("Selection() = %v", ta.Selection())
	}
	ta.SetScrollTop(-5)
	if ta.ScrollTop() != 0 {
		t.Errorf("ScrollTop() = %v", ta.ScrollTop())
	}
}

func TestFocus(t *testing.T) {
	ta := newArea("", 0)
	if !ta.Focused() {
		t.Error("new text area should be focused")
	}
	ta.Blur()
	if ta.Focused() {
		t.Error("Blur did not take effect")
	}
	ta.Focus()
	if !ta.Focused() {
		t.Error("Focus did not take effect")
	}
}

func TestSetTextResets(t *testing.T) {
	ta := newArea("abc", 3)
	ta.SetScrollTop(4)
	ta.SetText("xy\r\nz")
	if ta.Text() != "xy\nz" || ta.Selection() != cursor.NewCursorSelection(0) || ta.ScrollTop() != 0 {
		t.Errorf("got %q %v %v", ta.Text(), ta.Selection(), ta.ScrollTop())
	}
}

func TestUniqueIDs(t *testing.T) {
	if NewTextArea(nil).ID() == NewTextArea(nil).ID() {
		t.Error("text areas share an ID")
	}
}

type fakePlugin struct {
	name     string
	attached plugin.Host
}

func (p *fakePlugin) Name() string { return p.name }
func (p *fakePlugin) Attach(h plugin.Host) error {
	p.attached = h
	return nil
}

func TestAttach(t *testing.T) {
	ta := newArea("", 0)
	p := &fakePlugin{name: "fake"}
	if err := ta.Attach(p); err != nil {
		t.Fatal(err)
	}
	if p.attached != plugin.Host(ta) {
		t.Error("plugin was not attached to the text area")
	}
}

func TestUndoTyping(t *testing.T) {
	ta := newArea("", 0)
	for _, s := range []string{"h", "i"} {
		if err := ta.Type(s); err != nil {
			t.Fatal(err)
		}
	}

	press(t, ta, "Ctrl+Z")
	if ta.Text() != "" || ta.Selection() != cursor.NewCursorSelection(0) {
		t.Errorf("after undo got %q %v", ta.Text(), ta.Selection())
	}
	press(t, ta, "Ctrl+Y")
	if ta.Text() != "hi" || ta.Selection() != cursor.NewCursorSelection(2) {
		t.Errorf("after redo got %q %v", ta.Text(), ta.Selection())
	}

	press(t, ta, "Ctrl+Z")
	press(t, ta, "Ctrl+Shift+Z")
	if ta.Text() != "hi" {
		t.Errorf("Ctrl+Shift+Z should redo, got %q", ta.Text())
	}
	// Nothing left to redo is not an error.
	press(t, ta, "Ctrl+Y")
}

func TestUndoDelete(t *testing.T) {
	ta := newArea("abc", 3)
	press(t, ta, "Backspace")
	if ta.Text() != "ab" {
		t.Fatalf("Text() = %q", ta.Text())
	}
	if err := ta.Undo(); err != nil {
		t.Fatal(err)
	}
	if ta.Text() != "abc" || ta.Selection() != cursor.NewCursorSelection(3) {
		t.Errorf("got %q %v", ta.Text(), ta.Selection())
	}
}

func TestUndoApplyEdit(t *testing.T) {
	ta := newArea("x", 1)
	if _, err := ta.ApplyEdit(buffer.NewInsert(1, "()")); err != nil {
		t.Fatal(err)
	}
	ta.SetSelection(cursor.NewCursorSelection(2))

	if err := ta.Undo(); err != nil {
		t.Fatal(err)
	}
	if ta.Text() != "x" || ta.Selection() != cursor.NewCursorSelection(1) {
		t.Errorf("got %q %v", ta.Text(), ta.Selection())
	}
	if err := ta.Undo(); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
}

func TestSetTextClearsHistory(t *testing.T) {
	ta := newArea("", 0)
	if err := ta.Type("a"); err != nil {
		t.Fatal(err)
	}
	ta.SetText("fresh")
	if err := ta.Undo(); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("Undo() after SetText error = %v", err)
	}
}

func TestApplyEditSelectRecordsSelection(t *testing.T) {
	ta := newArea("x", 1)
	if _, err := ta.ApplyEditSelect(buffer.NewInsert(1, "()"), cursor.NewCursorSelection(2)); err != nil {
		t.Fatal(err)
	}
	if ta.Text() != "x()" || ta.Selection() != cursor.NewCursorSelection(2) {
		t.Fatalf("got %q %v", ta.Text(), ta.Selection())
	}

	_ = ta.Undo()
	if ta.Text() != "x" || ta.Selection() != cursor.NewCursorSelection(1) {
		t.Errorf("after Undo got %q %v", ta.Text(), ta.Selection())
	}
	_ = ta.Redo()
	if ta.Text() != "x()" || ta.Selection() != cursor.NewCursorSelection(2) {
		t.Errorf("after Redo got %q %v", ta.Text(), ta.Selection())
	}
}

func TestApplyEditSelectClamps(t *testing.T) {
	ta := newArea("", 0)
	if _, err := ta.ApplyEditSelect(buffer.NewInsert(0, "ab"), cursor.NewSelection(1, 9)); err != nil {
		t.Fatal(err)
	}
	if got := ta.Selection(); got != cursor.NewSelection(1, 2) {
		t.Errorf("Selection() = %v", got)
	}
}

func TestUndoDeleteRestoresPressedSelection(t *testing.T) {
	ta := newArea("abcd", 2)
	// A listener widening the selection changes what is deleted, not the
	// selection undo returns to.
	ta.OnKeyDown(func(ev *plugin.KeyEvent) {
		if ev.Is(key.KeyBackspace) {
			ta.SetSelection(cursor.NewSelection(1, 3))
		}
	})

	press(t, ta, "Backspace")
	if ta.Text() != "ad" || ta.Selection() != cursor.NewCursorSelection(1) {
		t.Fatalf("got %q %v", ta.Text(), ta.Selection())
	}
	_ = ta.Undo()
	if ta.Text() != "abcd" || ta.Selection() != cursor.NewCursorSelection(2) {
		t.Errorf("after Undo got %q %v", ta.Text(), ta.Selection())
	}
	_ = ta.Redo()
	if ta.Text() != "ad" || ta.Selection() != cursor.NewCursorSelection(1) {
		t.Errorf("after Redo got %q %v", ta.Text(), ta.Selection())
	}
}
