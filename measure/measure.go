// Package measure abstracts the rendered-DOM geometry queries the pagination
// engine depends on. Implementations answer "where is this node on screen
// right now"; the engine never touches a real DOM directly.
package measure

import (
	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
)

// Provider resolves nodes and document positions to pixel geometry. Every
// method reports failure through its bool result instead of panicking;
// callers treat a failed query as "try the next strategy".
type Provider interface {
	// BoundingRect returns the rendered bounds of a node in document-flow
	// coordinates.
	BoundingRect(n *dom.Node) (geo.Rect, bool)

	// CoordsAt returns the caret rectangle at a document position.
	CoordsAt(pos int) (geo.Rect, bool)

	// PositionAtPoint hit-tests a point and returns the nearest document
	// position.
	PositionAtPoint(x, y float64) (int, bool)
}

// TextStyle carries the character formatting that affects measured width.
type TextStyle struct {
	FontSizePx float64
	Bold       bool
	Italic     bool
}

// TextMeasurer measures rendered text width in pixels. The tab-layout
// resolver consumes one of these for span measurement.
type TextMeasurer interface {
	Width(text string, style TextStyle) float64
}

// DefaultFontSizePx is used whenever a style omits the font size.
const DefaultFontSizePx = 16
