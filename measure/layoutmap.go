package measure

import (
	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
)

// LayoutMap is a deterministic Provider backed by an explicit node→rect
// table. Tests and the CLI populate one (usually via Synthesize) instead of
// querying a browser. Position queries interpolate linearly inside a node's
// span, which models a node rendered as a vertical stack of equal lines.
type LayoutMap struct {
	doc   *dom.Document
	rects map[*dom.Node]geo.Rect
}

// NewLayoutMap returns an empty layout for doc.
func NewLayoutMap(doc *dom.Document) *LayoutMap {
	return &LayoutMap{doc: doc, rects: make(map[*dom.Node]geo.Rect)}
}

// SetRect records the rendered bounds for a node.
func (m *LayoutMap) SetRect(n *dom.Node, r geo.Rect) {
	m.rects[n] = r
}

// BoundingRect implements Provider.
func (m *LayoutMap) BoundingRect(n *dom.Node) (geo.Rect, bool) {
	r, ok := m.rects[n]
	if !ok || !r.Valid() {
		return geo.Rect{}, false
	}
	return r, true
}

// CoordsAt implements Provider. The caret rect at pos is derived from the
// deepest measured node containing pos, sliced proportionally to the
// position's offset within the node.
func (m *LayoutMap) CoordsAt(pos int) (geo.Rect, bool) {
	n := m.doc.NodeAt(pos)
	for n != nil {
		if r, ok := m.rects[n]; ok && r.Valid() {
			return sliceAt(n, pos, r), true
		}
		n = n.Parent()
	}
	return geo.Rect{}, false
}

// PositionAtPoint implements Provider. It hit-tests measured leaves first and
// falls back to enclosing nodes, returning a position interpolated from the
// vertical offset inside the hit rect.
func (m *LayoutMap) PositionAtPoint(x, y float64) (int, bool) {
	var best *dom.Node
	var bestRect geo.Rect
	dom.Walk(m.doc.Root(), func(n *dom.Node) bool {
		r, ok := m.rects[n]
		if !ok || !r.Valid() || !r.Contains(x, y) {
			return true
		}
		// Deeper (smaller) hits win.
		if best == nil || r.Height() <= bestRect.Height() {
			best, bestRect = n, r
		}
		return true
	})
	if best == nil {
		return 0, false
	}
	span := best.NodeSize()
	if span <= 1 || bestRect.Height() <= 0 {
		return best.Pos(), true
	}
	frac := (y - bestRect.Top) / bestRect.Height()
	offset := int(frac * float64(span))
	if offset < 0 {
		offset = 0
	}
	if offset >= span {
		offset = span - 1
	}
	return best.Pos() + offset, true
}

// sliceAt returns the one-line-tall band of r corresponding to pos within n.
func sliceAt(n *dom.Node, pos int, r geo.Rect) geo.Rect {
	span := n.NodeSize()
	if span <= 1 {
		return r
	}
	offset := pos - n.Pos()
	if offset < 0 {
		offset = 0
	}
	if offset >= span {
		offset = span - 1
	}
	h := r.Height() / float64(span)
	top := r.Top + float64(offset)*h
	return geo.Rect{Left: r.Left, Top: top, Right: r.Right, Bottom: top + h}
}
