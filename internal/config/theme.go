package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Colors is a parsed Theme.
type Colors struct {
	Text       colorful.Color
	Background colorful.Color
	Error      colorful.Color
}

// Colors parses the theme's hex values.
func (t Theme) Colors() (Colors, error) {
	var c Colors
	for _, f := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"text", t.Text, &c.Text},
		{"background", t.Background, &c.Background},
		{"error", t.Error, &c.Error},
	} {
		col, err := colorful.Hex(f.hex)
		if err != nil {
			return Colors{}, fmt.Errorf("%s colour %q: %w", f.name, f.hex, err)
		}
		*f.dst = col
	}
	return c, nil
}

// Muted is the text colour blended halfway towards the background, used
// for placeholders and the status line.
func (c Colors) Muted() colorful.Color {
	return c.Text.BlendLab(c.Background, 0.5).Clamped()
}

// ErrorBackground is a faint tint of the error colour over the background,
// used behind an invalid go-to-line query.
func (c Colors) ErrorBackground() colorful.Color {
	return c.Background.BlendLab(c.Error, 0.25).Clamped()
}
