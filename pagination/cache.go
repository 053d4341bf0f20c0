package pagination

import (
	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/measure"
)

// measureCache memoizes provider queries for the duration of one pagination
// run. Each run owns its own cache; nothing outlives the run.
type measureCache struct {
	provider measure.Provider
	rects    map[*dom.Node]rectEntry
	coords   map[int]rectEntry
}

type rectEntry struct {
	rect geo.Rect
	ok   bool
}

func newMeasureCache(p measure.Provider) *measureCache {
	return &measureCache{
		provider: p,
		rects:    make(map[*dom.Node]rectEntry),
		coords:   make(map[int]rectEntry),
	}
}

func (m *measureCache) boundingRect(n *dom.Node) (geo.Rect, bool) {
	if e, hit := m.rects[n]; hit {
		return e.rect, e.ok
	}
	r, ok := m.provider.BoundingRect(n)
	if ok && !r.Valid() {
		ok = false
	}
	m.rects[n] = rectEntry{rect: r, ok: ok}
	return r, ok
}

func (m *measureCache) coordsAt(pos int) (geo.Rect, bool) {
	if e, hit := m.coords[pos]; hit {
		return e.rect, e.ok
	}
	r, ok := m.provider.CoordsAt(pos)
	if ok && !r.Valid() {
		ok = false
	}
	m.coords[pos] = rectEntry{rect: r, ok: ok}
	return r, ok
}

func (m *measureCache) positionAtPoint(x, y float64) (int, bool) {
	return m.provider.PositionAtPoint(x, y)
}
