// Package fields projects document fields onto computed pages. A field that
// spans a page break is split into per-page segments so overlay UI (frames,
// highlights, signature boxes) can be drawn page by page.
package fields

import (
	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/measure"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/observability"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/pagination"
)

// Segment is the portion of one field visible on one page. Absolute
// coordinates are document-flow pixels; TopPx is relative to the page's
// content start so the overlay can position within the rendered page.
type Segment struct {
	PageIndex           int     `json:"pageIndex"`
	AbsoluteTopPx       float64 `json:"absoluteTopPx"`
	AbsoluteBottomPx    float64 `json:"absoluteBottomPx"`
	TopPx               float64 `json:"topPx"`
	HeightPx            float64 `json:"heightPx"`
	OffsetWithinFieldPx float64 `json:"offsetWithinFieldPx"`
}

// FieldSegments collects everything known about one field after projection.
type FieldSegments struct {
	FieldID  string            `json:"fieldId"`
	Type     string            `json:"fieldType,omitempty"`
	Alias    string            `json:"alias,omitempty"`
	Pos      int               `json:"pos"`
	NodeSize int               `json:"nodeSize"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Rect     geo.Rect          `json:"rect"`
	Segments []Segment         `json:"segments"`
}

// ComputeFieldSegments maps every field of the paginated document onto its
// pages. Fields the provider cannot measure are skipped. An empty page list
// yields an empty result.
func ComputeFieldSegments(res pagination.Result, provider measure.Provider, log observability.Logger) []FieldSegments {
	if log == nil {
		log = observability.NopLogger{}
	}
	if res.Doc == nil || len(res.Pages) == 0 {
		return nil
	}

	var out []FieldSegments
	for _, node := range res.Doc.Fields() {
		rect, ok := provider.BoundingRect(node)
		if !ok || !rect.Valid() {
			log.Debug("field skipped: unmeasurable",
				observability.Int("pos", node.Pos()))
			continue
		}

		fs := FieldSegments{
			Pos:      node.Pos(),
			NodeSize: node.NodeSize(),
			Attrs:    node.Attrs,
			Rect:     rect,
			Segments: ProjectRect(rect, res.Pages),
		}
		fs.FieldID, _ = node.Attr(dom.AttrFieldID)
		fs.Type, _ = node.Attr(dom.AttrFieldType)
		fs.Alias, _ = node.Attr(dom.AttrAlias)
		out = append(out, fs)
	}

	total := 0
	for _, fs := range out {
		total += len(fs.Segments)
	}
	log.Debug(observability.MetricFieldSegments,
		observability.Int("fields", len(out)),
		observability.Int("segments", total))
	return out
}

// ProjectRect intersects one field rectangle with each page's content band
// and returns the visible slices in page order. Zero- and negative-height
// intersections are dropped.
func ProjectRect(rect geo.Rect, pages []pagination.Page) []Segment {
	var segs []Segment
	for _, page := range pages {
		top := page.Break.StartOffsetPx
		bottom := page.Break.FittedBottom
		if bottom <= top {
			continue
		}
		slice, ok := rect.IntersectV(top, bottom)
		if !ok || slice.Height() <= 0 {
			continue
		}
		segs = append(segs, Segment{
			PageIndex:           page.PageIndex,
			AbsoluteTopPx:       slice.Top,
			AbsoluteBottomPx:    slice.Bottom,
			TopPx:               slice.Top - top,
			HeightPx:            slice.Height(),
			OffsetWithinFieldPx: slice.Top - rect.Top,
		})
	}
	return segs
}
