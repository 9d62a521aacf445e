package buffer

import (
	"slices"
	"unicode/utf8"
)

// content is an immutable rune sequence with a line-start index.
// Edits build a new content value; existing values are never modified.
type content struct {
	runes  []rune
	starts []Offset // starts[i] is the offset of line i; starts[0] == 0
}

func newContent(s string) content {
	c := content{runes: []rune(s)}
	c.index()
	return c
}

func (c *content) index() {
	c.starts = append(c.starts[:0:0], 0)
	for i, r := range c.runes {
		if r == '\n' {
			c.starts = append(c.starts, i+1)
		}
	}
}

func (c content) text() string {
	return string(c.runes)
}

func (c content) length() int {
	return len(c.runes)
}

func (c content) runeAt(offset Offset) (rune, bool) {
	if offset < 0 || offset >= len(c.runes) {
		return utf8.RuneError, false
	}
	return c.runes[offset], true
}

func (c content) slice(start, end Offset) string {
	return string(c.runes[start:end])
}

func (c content) lineCount() int {
	return len(c.starts)
}

func (c content) lineStart(line int) Offset {
	if line < 0 {
		return 0
	}
	if line >= len(c.starts) {
		return len(c.runes)
	}
	return c.starts[line]
}

// lineEnd returns the offset just before the line's terminating newline.
func (c content) lineEnd(line int) Offset {
	if line < 0 {
		return 0
	}
	if line+1 >= len(c.starts) {
		return len(c.runes)
	}
	return c.starts[line+1] - 1
}

func (c content) lineText(line int) string {
	if line < 0 || line >= len(c.starts) {
		return ""
	}
	return c.slice(c.lineStart(line), c.lineEnd(line))
}

func (c content) lineLen(line int) int {
	if line < 0 || line >= len(c.starts) {
		return 0
	}
	return c.lineEnd(line) - c.lineStart(line)
}

func (c content) offsetToPoint(offset Offset) Point {
	if offset <= 0 {
		return Point{}
	}
	if offset > len(c.runes) {
		offset = len(c.runes)
	}
	// Largest line whose start is <= offset.
	line, found := slices.BinarySearch(c.starts, offset)
	if !found {
		line--
	}
	return Point{Line: line, Column: offset - c.starts[line]}
}

func (c content) pointToOffset(p Point) Offset {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(c.starts) {
		return len(c.runes)
	}
	col := p.Column
	if col < 0 {
		col = 0
	}
	if n := c.lineLen(p.Line); col > n {
		col = n
	}
	return c.starts[p.Line] + col
}

func (c content) replace(start, end Offset, text string) content {
	ins := []rune(text)
	runes := make([]rune, 0, len(c.runes)-(end-start)+len(ins))
	runes = append(runes, c.runes[:start]...)
	runes = append(runes, ins...)
	runes = append(runes, c.runes[end:]...)
	next := content{runes: runes}
	next.index()
	return next
}
