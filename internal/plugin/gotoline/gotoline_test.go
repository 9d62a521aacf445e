package gotoline

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/engine/cursor"
	"github.com/dshills/caretkit/internal/host"
	"github.com/dshills/caretkit/internal/input/key"
	"github.com/dshills/caretkit/internal/location"
)

const sample = "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"

func setup(t *testing.T, text string, opts ...Option) (*host.TextArea, *Plugin) {
	t.Helper()
	ta := host.NewTextArea(buffer.NewBufferFromString(text))
	p := New(opts...)
	if err := ta.Attach(p); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	return ta, p
}

func typeQuery(d *Dialog, s string) {
	for _, r := range s {
		d.HandleKey(key.NewRuneEvent(r, key.ModNone))
	}
}

var (
	enter     = key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	escape    = key.NewSpecialEvent(key.KeyEscape, key.ModNone)
	backspace = key.NewSpecialEvent(key.KeyBackspace, key.ModNone)
	ctrlG     = key.NewRuneEvent('g', key.ModCtrl)
)

func TestChordOpensDialog(t *testing.T) {
	ta, p := setup(t, sample)
	if _, ok := p.Dialog(ta); ok {
		t.Fatal("dialog exists before first use")
	}

	if err := ta.Press(ctrlG); err != nil {
		t.Fatal(err)
	}
	d, ok := p.OpenDialog(ta)
	if !ok {
		t.Fatal("Ctrl+G did not open the dialog")
	}
	if ta.Focused() {
		t.Error("host kept focus while the dialog is open")
	}
	if d.State() != StateOpen || d.Query() != "" || d.Invalid() {
		t.Errorf("fresh dialog state = %v query=%q invalid=%v", d.State(), d.Query(), d.Invalid())
	}
	if d.Placeholder() != "Line:Column / Line no. then Enter" {
		t.Errorf("Placeholder() = %q", d.Placeholder())
	}
	if ta.Text() != sample {
		t.Error("chord modified the text")
	}
}

func TestDisabledChord(t *testing.T) {
	ta, p := setup(t, sample, WithChordEnabled(false))
	_ = ta.Press(ctrlG)
	if _, ok := p.OpenDialog(ta); ok {
		t.Fatal("disabled chord opened the dialog")
	}

	d := p.ShowPrompt(ta)
	if !d.Visible() {
		t.Error("ShowPrompt did not open the dialog")
	}
}

func TestCustomChord(t *testing.T) {
	ta, p := setup(t, sample)
	if err := p.SetChord("Alt+L"); err != nil {
		t.Fatal(err)
	}
	_ = ta.Press(ctrlG)
	if _, ok := p.OpenDialog(ta); ok {
		t.Error("old chord still opens the dialog")
	}
	_ = ta.Press(key.NewRuneEvent('l', key.ModAlt))
	if _, ok := p.OpenDialog(ta); !ok {
		t.Error("new chord did not open the dialog")
	}

	if err := p.SetChord("Hyper+Q"); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("SetChord error = %v", err)
	}
	if p.Chord() != key.MustParse("Alt+L") {
		t.Errorf("failed SetChord changed the chord to %v", p.Chord())
	}
}

func TestDialogIsCached(t *testing.T) {
	ta, p := setup(t, sample)
	first := p.ShowPrompt(ta)
	typeQuery(first, "3")
	first.Cancel()

	second := p.ShowPrompt(ta)
	if first != second {
		t.Error("ShowPrompt built a new dialog")
	}
	if second.Query() != "" {
		t.Errorf("reopened dialog kept query %q", second.Query())
	}

	other := host.NewTextArea(nil)
	if err := other.Attach(p); err != nil {
		t.Fatal(err)
	}
	if p.ShowPrompt(other) == first {
		t.Error("two hosts share a dialog")
	}
}

func TestSubmitJumpsToFirstNonWhitespace(t *testing.T) {
	ta, p := setup(t, sample)
	d := p.ShowPrompt(ta)
	typeQuery(d, "4")
	if d.Invalid() {
		t.Fatalf("query 4 flagged invalid: %v", d.Err())
	}
	d.HandleKey(enter)

	// Line 4 is "\tprintln..." starting at offset 28; the tab is skipped.
	if got := ta.Selection(); got != cursor.NewCursorSelection(29) {
		t.Errorf("Selection() = %v, want Cursor(29)", got)
	}
	if ta.ScrollTop() != 1 {
		t.Errorf("ScrollTop() = %v, want 1", ta.ScrollTop())
	}
	if d.Visible() || !ta.Focused() {
		t.Errorf("after Enter: visible=%v focused=%v", d.Visible(), ta.Focused())
	}
}

func TestSubmitWithColumn(t *testing.T) {
	ta, p := setup(t, sample)
	d := p.ShowPrompt(ta)
	typeQuery(d, "3:6")
	d.HandleKey(enter)
	// Line 3 starts at offset 14; column 6 is offset 19.
	if got := ta.Selection(); got != cursor.NewCursorSelection(19) {
		t.Errorf("Selection() = %v, want Cursor(19)", got)
	}
}

func TestInvalidQueryBlocksEnter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  error
	}{
		{"line past end", "99", location.ErrOutOfRange},
		{"line zero", "0", location.ErrOutOfRange},
		{"column past end", "1:50", location.ErrColumnOutOfRange},
		{"letters", "1a", location.ErrMalformedQuery},
		{"two colons", "1:2:3", location.ErrMalformedQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta, p := setup(t, sample)
			before := ta.Selection()
			d := p.ShowPrompt(ta)
			typeQuery(d, tt.query)

			if !d.Invalid() || !errors.Is(d.Err(), tt.want) {
				t.Fatalf("Err() = %v, want %v", d.Err(), tt.want)
			}
			d.HandleKey(enter)
			if !d.Visible() {
				t.Error("Enter closed the dialog despite the error indicator")
			}
			if ta.Selection() != before {
				t.Error("invalid query moved the caret")
			}
		})
	}
}

func TestBackspaceClearsError(t *testing.T) {
	ta, p := setup(t, sample)
	d := p.ShowPrompt(ta)
	typeQuery(d, "5x")
	if !d.Invalid() {
		t.Fatal("expected error indicator")
	}
	d.HandleKey(backspace)
	if d.Invalid() || d.Query() != "5" {
		t.Errorf("after Backspace: query=%q err=%v", d.Query(), d.Err())
	}
	d.HandleKey(backspace)
	d.HandleKey(backspace)
	if d.Query() != "" || d.Invalid() {
		t.Errorf("emptied query: %q err=%v", d.Query(), d.Err())
	}
}

func TestEmptySubmitClosesWithoutJump(t *testing.T) {
	ta, p := setup(t, sample)
	ta.SetSelection(cursor.NewCursorSelection(5))
	d := p.ShowPrompt(ta)
	d.HandleKey(enter)
	if d.Visible() {
		t.Error("dialog still open")
	}
	if ta.Selection() != cursor.NewCursorSelection(5) || ta.ScrollTop() != 0 {
		t.Errorf("empty query moved the view: %v scroll=%v", ta.Selection(), ta.ScrollTop())
	}
}

func TestEscapeCancels(t *testing.T) {
	ta, p := setup(t, sample)
	d := p.ShowPrompt(ta)
	typeQuery(d, "3")
	d.HandleKey(escape)
	if d.Visible() || !ta.Focused() {
		t.Errorf("visible=%v focused=%v", d.Visible(), ta.Focused())
	}
	if ta.Selection() != cursor.NewCursorSelection(0) {
		t.Error("Escape jumped")
	}
}

func TestChordSwallowedInsideDialog(t *testing.T) {
	ta, p := setup(t, sample)
	d := p.ShowPrompt(ta)
	typeQuery(d, "2")
	if !d.HandleKey(ctrlG) {
		t.Error("chord was not consumed")
	}
	if d.Query() != "2" || !d.Visible() {
		t.Errorf("chord changed the dialog: query=%q visible=%v", d.Query(), d.Visible())
	}
	if !d.HandleKey(key.NewSpecialEvent(key.KeyF5, key.ModNone)) {
		t.Error("open dialog should consume every key")
	}
}

func TestClosedDialogIgnoresKeys(t *testing.T) {
	ta, p := setup(t, sample)
	d := p.ShowPrompt(ta)
	d.Cancel()
	if d.HandleKey(key.NewRuneEvent('1', key.ModNone)) {
		t.Error("closed dialog consumed a key")
	}
	d.Submit()
	d.Cancel()
	if d.State() != StateClosed {
		t.Errorf("State() = %v", d.State())
	}
}

func TestSetQuery(t *testing.T) {
	ta, p := setup(t, sample)
	d := p.ShowPrompt(ta)
	d.SetQuery("2:")
	if d.Invalid() {
		t.Errorf("2: flagged invalid: %v", d.Err())
	}
	d.Submit()
	// Line 2 is empty, so the first non-whitespace scan stops at its end.
	if got := ta.Selection(); got != cursor.NewCursorSelection(13) {
		t.Errorf("Selection() = %v, want Cursor(13)", got)
	}
}

func TestGoTo(t *testing.T) {
	text := strings.Repeat("line\n", 20)
	ta := host.NewTextArea(buffer.NewBufferFromString(text),
		host.WithMetrics(location.Metrics{FontSize: 16, LineHeight: 24}))
	p := New()
	ta.Blur()

	if !p.GoTo(ta, 10, 3) {
		t.Fatal("GoTo(10, 3) = false")
	}
	if got := ta.Selection(); got != cursor.NewCursorSelection(47) {
		t.Errorf("Selection() = %v, want Cursor(47)", got)
	}
	if ta.ScrollTop() != 164 {
		t.Errorf("ScrollTop() = %v, want 164", ta.ScrollTop())
	}
	if !ta.Focused() {
		t.Error("GoTo did not focus the host")
	}
}

func TestGoToOutOfRangeIsSilent(t *testing.T) {
	ta, p := setup(t, "a\nb")
	ta.SetSelection(cursor.NewCursorSelection(1))
	ta.SetScrollTop(2)

	for _, target := range [][2]int{{0, 0}, {3, 0}, {1, 5}, {-1, 0}} {
		if p.GoTo(ta, target[0], target[1]) {
			t.Errorf("GoTo(%d, %d) = true", target[0], target[1])
		}
	}
	if ta.Selection() != cursor.NewCursorSelection(1) || ta.ScrollTop() != 2 {
		t.Error("failed GoTo changed the host")
	}
}

func TestStateString(t *testing.T) {
	if StateClosed.String() != "closed" || StateOpen.String() != "open" || State(7).String() != "unknown" {
		t.Error("unexpected State strings")
	}
}

func TestDetach(t *testing.T) {
	ta, p := setup(t, sample)
	_ = ta.Press(ctrlG)
	if _, ok := p.OpenDialog(ta); !ok {
		t.Fatal("Ctrl+G did not open the dialog")
	}

	p.Detach(ta)
	if !ta.Focused() {
		t.Error("Detach did not return focus to the host")
	}
	if _, ok := p.Dialog(ta); ok {
		t.Error("dialog still cached after Detach")
	}

	_ = ta.Press(ctrlG)
	if _, ok := p.Dialog(ta); ok {
		t.Error("chord opened a dialog after Detach")
	}
	if ta.Text() != sample {
		t.Errorf("Text() = %q", ta.Text())
	}

	p.Detach(ta)
}

func TestName(t *testing.T) {
	got := New().Name()
	if got != Name {
		t.Errorf("Name() = %q", got)
	}
	if got != "gotoline" {
		t.Errorf("Name() = %q", got)
	}
}
