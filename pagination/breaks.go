package pagination

import (
	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/observability"
)

// finder locates the exact position at which an overflowing block must be
// split. Strategies are ordered attempts; each reports failure through its
// bool result and the first success wins. No strategy ever panics: a failed
// measurement simply advances the cascade.
type finder struct {
	doc   *dom.Document
	cache *measureCache
	log   observability.Logger
}

// breakQuery carries the geometry of one break search. lowerBoundPos is the
// last emitted break position; candidates at or before it are stale.
type breakQuery struct {
	block         *dom.Node
	pageStart     float64
	pageLimit     float64
	lowerBoundPos int
}

type attemptFunc func(breakQuery) (BreakResult, bool)

// findBreak runs the full cascade for an overflowing block.
func (f *finder) findBreak(q breakQuery) (BreakResult, bool) {
	attempts := []attemptFunc{
		f.attemptHardBreak,
		f.attemptTable,
		f.attemptGeneric,
		f.attemptCoordinate,
	}
	for _, attempt := range attempts {
		if r, ok := attempt(q); ok {
			r = f.adjustListItem(q, r)
			return clampResult(r, q.pageStart, q.pageLimit, q.lowerBoundPos), true
		}
	}
	return BreakResult{}, false
}

// attemptHardBreak scans the block, and the block itself when it carries the
// forced-break marker, for an explicit page-break node inside the current
// page band. The break position is extended across adjacent section markers
// so a forced break never splits a marker pair.
func (f *finder) attemptHardBreak(q breakQuery) (BreakResult, bool) {
	var marker *dom.Node
	dom.Walk(q.block, func(n *dom.Node) bool {
		if marker != nil {
			return false
		}
		if n.IsHardBreak() && n.End() > q.lowerBoundPos {
			marker = n
			return false
		}
		return true
	})
	if marker == nil {
		return BreakResult{}, false
	}

	rect, ok := f.cache.boundingRect(marker)
	if !ok {
		rect, ok = f.cache.coordsAt(marker.Pos())
	}
	if !ok {
		return BreakResult{}, false
	}
	if rect.Top < q.pageStart || rect.Top > q.pageLimit {
		return BreakResult{}, false
	}

	pos := marker.End()
	for sib := marker.NextSibling(); sib != nil && sib.Kind == dom.KindSectionMarker; sib = sib.NextSibling() {
		pos = sib.End()
	}
	return BreakResult{Top: rect.Top, Bottom: rect.Bottom, Pos: pos}, true
}

// attemptTable handles tables and table rows: locate the first row whose
// bottom edge crosses the page boundary, refine inside its cells, then at
// row level, and finally move the whole row to the next page. Rows are never
// sliced mid-row by the fallback.
func (f *finder) attemptTable(q breakQuery) (BreakResult, bool) {
	if q.block.Kind != dom.KindTable && q.block.Kind != dom.KindTableRow {
		return BreakResult{}, false
	}

	row := f.firstOverflowingRow(q.block, q.pageLimit)
	if row == nil {
		return BreakResult{}, false
	}

	for _, cell := range row.Children {
		if cell.Kind != dom.KindTableCell {
			continue
		}
		if r, ok := f.searchContent(cell, q); ok {
			return r, true
		}
	}
	if r, ok := f.searchContent(row, q); ok {
		return r, true
	}

	rect, ok := f.cache.boundingRect(row)
	if !ok {
		return BreakResult{}, false
	}
	f.log.Debug("table row moved whole to next page",
		observability.Int("pos", row.Pos()),
		observability.Float64("rowTop", rect.Top))
	return BreakResult{Top: rect.Top, Bottom: rect.Top, Pos: row.Pos()}, true
}

// firstOverflowingRow returns the first row of the table (or the row itself)
// whose bottom edge exceeds the page limit.
func (f *finder) firstOverflowingRow(block *dom.Node, pageLimit float64) *dom.Node {
	var found *dom.Node
	dom.Walk(block, func(n *dom.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == dom.KindTableRow {
			if rect, ok := f.cache.boundingRect(n); ok && rect.Bottom > pageLimit {
				found = n
			}
			return false
		}
		return true
	})
	return found
}

// attemptGeneric descends into block content to find the last position whose
// rendered bottom edge still fits on the page.
func (f *finder) attemptGeneric(q breakQuery) (BreakResult, bool) {
	return f.searchContent(q.block, q)
}

// searchContent scans the inline leaves of n in document order, keeping the
// deepest position whose line bottom is at or above the page limit. Text
// leaves straddling the boundary are refined by binary search over their
// positions, which is valid because line bands are vertically monotonic.
func (f *finder) searchContent(n *dom.Node, q breakQuery) (BreakResult, bool) {
	var best BreakResult
	found := false

	stack := []*dom.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		isLeaf := cur.Kind == dom.KindText || cur.Kind.IsInlineAtom()
		if !isLeaf {
			for i := len(cur.Children) - 1; i >= 0; i-- {
				stack = append(stack, cur.Children[i])
			}
			continue
		}
		if cur.End() <= q.lowerBoundPos {
			continue
		}

		rect, ok := f.cache.boundingRect(cur)
		if !ok {
			rect, ok = f.cache.coordsAt(cur.Pos())
			if !ok {
				continue
			}
			// The caret rect covers only the first line; extend to the
			// leaf's last position so straddling is detected.
			if cur.NodeSize() > 1 {
				if last, lok := f.cache.coordsAt(cur.End() - 1); lok && last.Bottom > rect.Bottom {
					rect.Bottom = last.Bottom
				}
			}
		}
		if rect.Top > q.pageLimit {
			// Leaves are visited in document order; everything later is lower.
			break
		}
		if rect.Bottom <= q.pageLimit {
			if rect.Bottom > q.pageStart {
				best = BreakResult{Top: rect.Top, Bottom: rect.Bottom, Pos: cur.End()}
				found = true
			}
			continue
		}
		if cur.Kind == dom.KindText {
			if r, ok := f.refineText(cur, q); ok {
				best = r
				found = true
			}
		}
		break
	}

	if !found || best.Bottom <= q.pageStart {
		return BreakResult{}, false
	}
	return best, true
}

// refineText binary-searches a text leaf for the last position whose line
// bottom fits above the page limit.
func (f *finder) refineText(text *dom.Node, q breakQuery) (BreakResult, bool) {
	lo := text.Pos()
	if q.lowerBoundPos > lo {
		lo = q.lowerBoundPos
	}
	hi := text.End() - 1
	if hi < lo {
		return BreakResult{}, false
	}

	fits := func(pos int) (bool, bool) {
		rect, ok := f.cache.coordsAt(pos)
		if !ok {
			return false, false
		}
		return rect.Bottom <= q.pageLimit, true
	}

	// Establish that at least the first position fits.
	if ok, measured := fits(lo); !measured || !ok {
		return BreakResult{}, false
	}

	for lo < hi {
		mid := (lo + hi + 1) / 2
		ok, measured := fits(mid)
		if !measured {
			hi = mid - 1
			continue
		}
		if ok {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	rect, ok := f.cache.coordsAt(lo)
	if !ok || rect.Bottom <= q.pageStart {
		return BreakResult{}, false
	}
	return BreakResult{Top: rect.Top, Bottom: rect.Bottom, Pos: lo + 1}, true
}

// adjustListItem re-resolves a break that landed inside a list item against
// the item's content element rather than its marker, falling back to a
// hit-test at the item's center when the direct lookup fails.
func (f *finder) adjustListItem(q breakQuery, r BreakResult) BreakResult {
	node := f.doc.NodeAt(r.Pos)
	var item *dom.Node
	for cur := node; cur != nil; cur = cur.Parent() {
		if cur.Kind == dom.KindListItem {
			item = cur
			break
		}
	}
	if item == nil {
		return r
	}

	var content *dom.Node
	for _, c := range item.Children {
		if c.Kind.IsBlock() {
			content = c
			break
		}
	}
	if content == nil {
		return r
	}

	pos := r.Pos
	if pos <= content.Pos() {
		pos = content.Pos() + 1
	}
	if pos > content.End()-1 {
		pos = content.End() - 1
	}
	if _, ok := f.cache.coordsAt(pos); ok {
		r.Pos = pos
		return r
	}

	rect, ok := f.cache.boundingRect(item)
	if !ok {
		return r
	}
	if p, ok := f.cache.positionAtPoint(rect.CenterX(), rect.CenterY()); ok {
		r.Pos = p
		if c, ok := f.cache.coordsAt(p); ok {
			r.Top = c.Top
			r.Bottom = c.Bottom
		}
	}
	return r
}

// attemptCoordinate is the last resort: hit-test just inside the block's
// left edge, one pixel above the page limit, and take whatever coordinates
// that position reports.
func (f *finder) attemptCoordinate(q breakQuery) (BreakResult, bool) {
	x := 1.0
	if rect, ok := f.cache.boundingRect(q.block); ok {
		x = rect.Left + 1
	}
	pos, ok := f.cache.positionAtPoint(x, q.pageLimit-1)
	if !ok {
		return BreakResult{}, false
	}
	r := BreakResult{Top: q.pageLimit, Bottom: q.pageLimit, Pos: pos}
	if c, ok := f.cache.coordsAt(pos); ok {
		r.Top = c.Top
		r.Bottom = c.Bottom
	}
	return r, true
}
