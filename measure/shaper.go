package measure

import (
	"bytes"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// ShapedMeasurer measures text by running it through HarfBuzz shaping and
// summing glyph advances, so ligatures and kerning affect the result the same
// way they do on the rendering surface.
type ShapedMeasurer struct {
	mu     sync.Mutex
	face   *gofont.Face
	shaper shaping.HarfbuzzShaper
}

// NewShapedMeasurer parses a TrueType font and returns a measurer for it.
func NewShapedMeasurer(ttf []byte) (*ShapedMeasurer, error) {
	face, err := gofont.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, err
	}
	return &ShapedMeasurer{face: face}, nil
}

// NewDefaultMeasurer returns a measurer backed by the Go Regular face.
func NewDefaultMeasurer() (*ShapedMeasurer, error) {
	return NewShapedMeasurer(goregular.TTF)
}

// Width implements TextMeasurer. Bold and italic variants are approximated
// with the single loaded face; only the size varies.
func (m *ShapedMeasurer) Width(text string, style TextStyle) float64 {
	if text == "" {
		return 0
	}
	size := style.FontSizePx
	if size <= 0 {
		size = DefaultFontSizePx
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      m.face,
		Size:      fixed.Int26_6(math.Round(size * 64)),
		Script:    language.Latin,
		Language:  language.DefaultLanguage(),
	}

	m.mu.Lock()
	output := m.shaper.Shape(input)
	m.mu.Unlock()

	var total fixed.Int26_6
	for _, g := range output.Glyphs {
		total += g.XAdvance
	}
	return float64(total) / 64.0
}
