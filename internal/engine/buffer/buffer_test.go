package buffer

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	for i, want := range []string{"line1", "line2", "line3"} {
		if got := b.LineText(i); got != want {
			t.Errorf("LineText(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestNewBufferNormalizesLineEndings(t *testing.T) {
	b := NewBufferFromString("a\r\nb\rc")
	if b.Text() != "a\nb\nc" {
		t.Errorf("expected normalized text, got %q", b.Text())
	}
}

func TestBufferCountsCharactersNotBytes(t *testing.T) {
	b := NewBufferFromString("héllo\nwörld")

	if b.Len() != 11 {
		t.Errorf("expected 11 characters, got %d", b.Len())
	}
	r, ok := b.RuneAt(7)
	if !ok || r != 'ö' {
		t.Errorf("RuneAt(7) = %q, %v; want 'ö', true", r, ok)
	}
	if b.LineStart(1) != 6 {
		t.Errorf("LineStart(1) = %d, want 6", b.LineStart(1))
	}
	if b.LineLen(0) != 5 {
		t.Errorf("LineLen(0) = %d, want 5", b.LineLen(0))
	}
}

func TestRuneAtOutOfRange(t *testing.T) {
	b := NewBufferFromString("ab")

	for _, off := range []int{-1, 2, 10} {
		if _, ok := b.RuneAt(off); ok {
			t.Errorf("RuneAt(%d) should report false", off)
		}
	}
}

func TestLineAccessorsTrailingNewline(t *testing.T) {
	b := NewBufferFromString("abc\n")

	if b.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", b.LineCount())
	}
	if b.LineText(1) != "" {
		t.Errorf("expected empty last line, got %q", b.LineText(1))
	}
	if b.LineStart(1) != 4 {
		t.Errorf("LineStart(1) = %d, want 4", b.LineStart(1))
	}
	if b.LineText(5) != "" || b.LineLen(5) != 0 {
		t.Error("out-of-range lines should be empty")
	}
}

func TestBufferInsert(t *testing.T) {
	b := NewBufferFromString("Hello World")

	end, err := b.Insert(5, ",")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if end != 6 {
		t.Errorf("expected end position 6, got %d", end)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := NewBufferFromString("abc")

	if _, err := b.Insert(4, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if _, err := b.Insert(-1, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestBufferDelete(t *testing.T) {
	b := NewBufferFromString("()")

	if err := b.Delete(0, 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !b.IsEmpty() {
		t.Errorf("expected empty buffer, got %q", b.Text())
	}
}

func TestBufferDeleteInvalid(t *testing.T) {
	b := NewBufferFromString("abc")

	tests := []struct{ start, end int }{
		{-1, 1},
		{2, 1},
		{0, 4},
	}
	for _, tt := range tests {
		if err := b.Delete(tt.start, tt.end); !errors.Is(err, ErrRangeInvalid) {
			t.Errorf("Delete(%d, %d) = %v, want ErrRangeInvalid", tt.start, tt.end, err)
		}
	}
}

func TestApplyEditResult(t *testing.T) {
	b := NewBufferFromString("a(b)c")

	res, err := b.ApplyEdit(NewEdit(NewRange(1, 4), "[ü]"))
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if b.Text() != "a[ü]c" {
		t.Errorf("unexpected text %q", b.Text())
	}
	if res.OldText != "(b)" {
		t.Errorf("OldText = %q", res.OldText)
	}
	if res.NewRange != NewRange(1, 4) {
		t.Errorf("NewRange = %v", res.NewRange)
	}
	if res.Delta != 0 {
		t.Errorf("Delta = %d, want 0", res.Delta)
	}
}

func TestRevisionChangesOnEdit(t *testing.T) {
	b := NewBufferFromString("x")
	before := b.RevisionID()

	if _, err := b.Insert(1, "y"); err != nil {
		t.Fatal(err)
	}
	if b.RevisionID() == before {
		t.Error("revision should change after edit")
	}
}

func TestSnapshotIsStable(t *testing.T) {
	b := NewBufferFromString("one\ntwo")
	snap := b.Snapshot()

	if _, err := b.Insert(0, "zero\n"); err != nil {
		t.Fatal(err)
	}

	if snap.Text() != "one\ntwo" {
		t.Errorf("snapshot changed: %q", snap.Text())
	}
	if snap.LineCount() != 2 {
		t.Errorf("snapshot line count = %d, want 2", snap.LineCount())
	}
	if b.LineCount() != 3 {
		t.Errorf("buffer line count = %d, want 3", b.LineCount())
	}
}

func TestOffsetPointRoundTrip(t *testing.T) {
	b := NewBufferFromString("abc\n  def\nghi")

	tests := []struct {
		offset int
		point  Point
	}{
		{0, Point{0, 0}},
		{3, Point{0, 3}},
		{4, Point{1, 0}},
		{6, Point{1, 2}},
		{10, Point{2, 0}},
		{13, Point{2, 3}},
	}
	for _, tt := range tests {
		if got := b.OffsetToPoint(tt.offset); got != tt.point {
			t.Errorf("OffsetToPoint(%d) = %v, want %v", tt.offset, got, tt.point)
		}
		if got := b.PointToOffset(tt.point); got != tt.offset {
			t.Errorf("PointToOffset(%v) = %d, want %d", tt.point, got, tt.offset)
		}
	}
}

func TestPointToOffsetClampsColumn(t *testing.T) {
	b := NewBufferFromString("ab\ncd")

	if got := b.PointToOffset(Point{Line: 0, Column: 10}); got != 2 {
		t.Errorf("expected clamp to 2, got %d", got)
	}
	if got := b.PointToOffset(Point{Line: 9}); got != 5 {
		t.Errorf("expected clamp to end, got %d", got)
	}
}

func TestWriteToRestoresLineEnding(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("a\r\nb\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if b.LineEnding() != LineEndingCRLF {
		t.Fatalf("expected CRLF detection, got %v", b.LineEnding())
	}

	var sb strings.Builder
	if _, err := b.WriteTo(&sb); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "a\r\nb\r\n" {
		t.Errorf("unexpected output %q", sb.String())
	}
}

func TestNewBufferFromReaderRejectsInvalidUTF8(t *testing.T) {
	_, err := NewBufferFromReader(strings.NewReader("\xff\xfe"))
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\rb\r", LineEndingCR},
		{"a\nb\nc\r\n", LineEndingLF},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestConcurrentReads(t *testing.T) {
	b := NewBufferFromString(strings.Repeat("line\n", 100))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.LineText(j)
			}
		}()
	}
	if _, err := b.Insert(0, "x"); err != nil {
		t.Error(err)
	}
	wg.Wait()
}
