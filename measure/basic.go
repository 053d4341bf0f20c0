package measure

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// BasicMeasurer is a dependency-light TextMeasurer backed by the fixed-pitch
// bitmap face from x/image. Widths scale linearly with the requested size.
// It is the fallback when no shaping face is available.
type BasicMeasurer struct {
	face font.Face
}

// NewBasicMeasurer returns a measurer over basicfont.Face7x13.
func NewBasicMeasurer() *BasicMeasurer {
	return &BasicMeasurer{face: basicfont.Face7x13}
}

// Width implements TextMeasurer. Bold and italic are ignored; the bitmap
// face has no variants.
func (m *BasicMeasurer) Width(text string, style TextStyle) float64 {
	if text == "" {
		return 0
	}
	size := style.FontSizePx
	if size <= 0 {
		size = DefaultFontSizePx
	}
	adv := font.MeasureString(m.face, text)
	return float64(adv) / 64.0 * size / float64(basicfont.Face7x13.Height)
}
