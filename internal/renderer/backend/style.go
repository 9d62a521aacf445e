package backend

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/caretkit/internal/config"
)

// Styles are the tcell styles the editor draws with.
type Styles struct {
	Text        tcell.Style
	Muted       tcell.Style
	Selection   tcell.Style
	Status      tcell.Style
	Prompt      tcell.Style
	Placeholder tcell.Style
	Invalid     tcell.Style
}

// NewStyles derives the drawing styles from theme colours.
func NewStyles(c config.Colors) Styles {
	fg := Color(c.Text)
	bg := Color(c.Background)
	muted := Color(c.Muted())
	errFg := Color(c.Error)
	errBg := Color(c.ErrorBackground())

	base := tcell.StyleDefault.Foreground(fg).Background(bg)
	return Styles{
		Text:        base,
		Muted:       base.Foreground(muted),
		Selection:   base.Reverse(true),
		Status:      base.Foreground(muted).Reverse(true),
		Prompt:      base.Bold(true),
		Placeholder: base.Foreground(muted).Italic(true),
		Invalid:     tcell.StyleDefault.Foreground(errFg).Background(errBg),
	}
}

// Color converts a colorful colour to a true-colour tcell colour.
func Color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
