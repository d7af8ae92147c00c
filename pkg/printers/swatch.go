package printers

import (
	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Swatch picks the terminal color closest in hue to a #rrggbb value. Empty,
// unparsable or near-grey values render in the default foreground.
func Swatch(hex string) *color.Color {
	return color.New(SwatchAttribute(hex))
}

func SwatchAttribute(hex string) color.Attribute {
	if hex == "" {
		return color.Reset
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Reset
	}
	h, s, _ := c.Hsv()
	if s < 0.08 {
		return color.FgHiWhite
	}
	switch {
	case h < 30 || h >= 330:
		return color.FgHiRed
	case h < 90:
		return color.FgHiYellow
	case h < 150:
		return color.FgHiGreen
	case h < 210:
		return color.FgHiCyan
	case h < 270:
		return color.FgHiBlue
	default:
		return color.FgHiMagenta
	}
}
