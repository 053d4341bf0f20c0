package measure

import (
	"math"
	"unicode/utf8"

	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
)

// Metrics is the simplified line model Synthesize uses to fabricate rendered
// geometry for a document: fixed line height, fixed average glyph advance,
// uniform content width.
type Metrics struct {
	ContentWidthPx float64
	LineHeightPx   float64
	CharWidthPx    float64
	BlockGapPx     float64
	RowMinHeightPx float64
}

// DefaultMetrics approximates an 11pt body face on a US Letter page.
func DefaultMetrics() Metrics {
	return Metrics{
		ContentWidthPx: 624, // 816 - 2×96 margins
		LineHeightPx:   20,
		CharWidthPx:    8,
		BlockGapPx:     8,
		RowMinHeightPx: 28,
	}
}

// Synthesize lays the document out under the metrics model and returns a
// LayoutMap holding every block's rect. It exists so pagination can be
// exercised (and tested) without a live rendering surface.
func Synthesize(doc *dom.Document, m Metrics) *LayoutMap {
	if m.LineHeightPx <= 0 {
		m.LineHeightPx = DefaultMetrics().LineHeightPx
	}
	if m.CharWidthPx <= 0 {
		m.CharWidthPx = DefaultMetrics().CharWidthPx
	}
	if m.ContentWidthPx <= 0 {
		m.ContentWidthPx = DefaultMetrics().ContentWidthPx
	}
	if m.RowMinHeightPx <= 0 {
		m.RowMinHeightPx = m.LineHeightPx
	}

	lm := NewLayoutMap(doc)
	y := 0.0
	for i, block := range doc.Blocks() {
		if i > 0 {
			y += m.BlockGapPx
		}
		y = placeBlock(lm, block, 0, y, m.ContentWidthPx, m)
	}
	return lm
}

func placeBlock(lm *LayoutMap, n *dom.Node, x, y, width float64, m Metrics) float64 {
	switch n.Kind {
	case dom.KindHardBreak, dom.KindSectionMarker:
		lm.SetRect(n, geo.Rect{Left: x, Top: y, Right: x + width, Bottom: y})
		return y

	case dom.KindTable:
		top := y
		for _, row := range tableRows(n) {
			y = placeBlock(lm, row, x, y, width, m)
		}
		lm.SetRect(n, geo.Rect{Left: x, Top: top, Right: x + width, Bottom: y})
		return y

	case dom.KindTableRow:
		cells := n.Children
		rowH := m.RowMinHeightPx
		cellW := width
		if len(cells) > 0 {
			cellW = width / float64(len(cells))
		}
		for _, cell := range cells {
			if h := contentHeight(cell, cellW, m); h > rowH {
				rowH = h
			}
		}
		cx := x
		for _, cell := range cells {
			rect := geo.Rect{Left: cx, Top: y, Right: cx + cellW, Bottom: y + rowH}
			lm.SetRect(cell, rect)
			spreadInline(lm, cell, rect)
			cx += cellW
		}
		lm.SetRect(n, geo.Rect{Left: x, Top: y, Right: x + width, Bottom: y + rowH})
		return y + rowH

	case dom.KindList, dom.KindListItem, dom.KindOther:
		if len(n.Children) == 0 {
			rect := geo.Rect{Left: x, Top: y, Right: x + width, Bottom: y + m.LineHeightPx}
			lm.SetRect(n, rect)
			return rect.Bottom
		}
		top := y
		for _, c := range n.Children {
			if c.Kind == dom.KindText || c.Kind == dom.KindRun || c.Kind.IsInlineAtom() {
				// Mixed content: treat the whole node as one flowed block.
				rect := geo.Rect{Left: x, Top: top, Right: x + width, Bottom: top + contentHeight(n, width, m)}
				lm.SetRect(n, rect)
				spreadInline(lm, n, rect)
				return rect.Bottom
			}
		}
		for _, c := range n.Children {
			y = placeBlock(lm, c, x, y, width, m)
		}
		lm.SetRect(n, geo.Rect{Left: x, Top: top, Right: x + width, Bottom: y})
		return y

	default: // paragraph, heading
		rect := geo.Rect{Left: x, Top: y, Right: x + width, Bottom: y + contentHeight(n, width, m)}
		lm.SetRect(n, rect)
		spreadInline(lm, n, rect)
		return rect.Bottom
	}
}

// contentHeight estimates the flowed height of a node's text under the line
// model: ceil(runes / charsPerLine) lines, at least one.
func contentHeight(n *dom.Node, width float64, m Metrics) float64 {
	runes := utf8.RuneCountInString(n.TextContent())
	perLine := int(width / m.CharWidthPx)
	if perLine < 1 {
		perLine = 1
	}
	lines := int(math.Ceil(float64(runes) / float64(perLine)))
	if lines < 1 {
		lines = 1
	}
	return float64(lines) * m.LineHeightPx
}

// spreadInline assigns each inline descendant a proportional vertical band of
// the container rect, matching the LayoutMap interpolation model.
func spreadInline(lm *LayoutMap, n *dom.Node, rect geo.Rect) {
	span := n.NodeSize()
	if span <= 2 {
		return
	}
	inner := span - 2
	dom.Walk(n, func(d *dom.Node) bool {
		if d == n {
			return true
		}
		start := d.Pos() - (n.Pos() + 1)
		if start < 0 {
			start = 0
		}
		frac0 := float64(start) / float64(inner)
		frac1 := float64(start+d.NodeSize()) / float64(inner)
		if frac1 > 1 {
			frac1 = 1
		}
		lm.SetRect(d, geo.Rect{
			Left:   rect.Left,
			Top:    rect.Top + frac0*rect.Height(),
			Right:  rect.Right,
			Bottom: rect.Top + frac1*rect.Height(),
		})
		return true
	})
}

// tableRows collects the rows of a table, looking through row-group wrappers.
func tableRows(table *dom.Node) []*dom.Node {
	var rows []*dom.Node
	dom.Walk(table, func(n *dom.Node) bool {
		if n.Kind == dom.KindTableRow {
			rows = append(rows, n)
			return false
		}
		return true
	})
	return rows
}
