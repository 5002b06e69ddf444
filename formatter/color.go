// FILE: lixenwraith/sawlog/formatter/color.go
package formatter

import (
	"github.com/fatih/color"
)

// PaletteSize is the number of producer badge colours
const PaletteSize = 13

// newColor builds a color that always emits escapes; whether to colour at all
// is decided per line by the caller, not by fatih/color's global NoColor.
func newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

var (
	colorDarkGrey    = newColor(color.FgBlack, color.Bold)
	colorDarkRed     = newColor(color.FgRed)
	colorRed         = newColor(color.FgRed, color.Bold)
	colorDarkGreen   = newColor(color.FgGreen)
	colorGreen       = newColor(color.FgGreen, color.Bold)
	colorDarkYellow  = newColor(color.FgYellow)
	colorYellow      = newColor(color.FgYellow, color.Bold)
	colorDarkBlue    = newColor(color.FgBlue)
	colorBlue        = newColor(color.FgBlue, color.Bold)
	colorDarkMagenta = newColor(color.FgMagenta)
	colorMagenta     = newColor(color.FgMagenta, color.Bold)
	colorDarkCyan    = newColor(color.FgCyan)
	colorCyan        = newColor(color.FgCyan, color.Bold)
)

// producerPalette is indexed by producer id modulo PaletteSize
var producerPalette = [PaletteSize]*color.Color{
	colorDarkGrey,
	colorDarkRed,
	colorRed,
	colorDarkGreen,
	colorGreen,
	colorDarkYellow,
	colorYellow,
	colorDarkBlue,
	colorBlue,
	colorDarkMagenta,
	colorMagenta,
	colorDarkCyan,
	colorCyan,
}

// bracketColor paints badge delimiters
var bracketColor = colorDarkGrey

// levelColor returns the colour for a level, nil when the level is printed plain
func levelColor(level int64) *color.Color {
	switch level {
	case LevelError:
		return colorDarkRed
	case LevelWarning:
		return colorRed
	case LevelNotice:
		return colorGreen
	case LevelDebug:
		return colorDarkGrey
	default:
		return nil
	}
}

// PaletteIndex returns the palette slot used for a producer badge
func PaletteIndex(producer uint64) int {
	return int(producer % PaletteSize)
}
