// Package pagination computes where page boundaries fall in a continuously
// reflowing document. It walks the document's top-level blocks, measures them
// through an injected provider, and produces a page list describing every
// break in pixel coordinates. It renders nothing itself.
package pagination

import (
	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
)

// LastPagePos is the sentinel break position of the final page, which ends
// with the document rather than at a computed split.
const LastPagePos = -1

// Break describes where one page's content ends in document-flow pixels.
// Top and Bottom are the raw break-region bounds; FittedTop and FittedBottom
// are the same bounds clamped into the page's usable content region.
type Break struct {
	StartOffsetPx float64 `json:"startOffsetPx"`
	Pos           int     `json:"pos"`
	Top           float64 `json:"top"`
	Bottom        float64 `json:"bottom"`
	FittedTop     float64 `json:"fittedTop"`
	FittedBottom  float64 `json:"fittedBottom"`
}

// Metrics is one page's full geometry.
type Metrics struct {
	PageHeightPx    float64 `json:"pageHeightPx"`
	PageWidthPx     float64 `json:"pageWidthPx"`
	MarginTopPx     float64 `json:"marginTopPx"`
	MarginBottomPx  float64 `json:"marginBottomPx"`
	MarginLeftPx    float64 `json:"marginLeftPx"`
	MarginRightPx   float64 `json:"marginRightPx"`
	ContentHeightPx float64 `json:"contentHeightPx"`
	ContentWidthPx  float64 `json:"contentWidthPx"`
	HeaderHeightPx  float64 `json:"headerHeightPx"`
	FooterHeightPx  float64 `json:"footerHeightPx"`
	PageGapPx       float64 `json:"pageGapPx"`
}

// AreaMetrics describes a header or footer band inside a page.
type AreaMetrics struct {
	OffsetPx          float64 `json:"offsetPx"`
	ContentHeightPx   float64 `json:"contentHeightPx"`
	EffectiveHeightPx float64 `json:"effectiveHeightPx"`
}

// HeaderFooterArea is the resolved header or footer of one page.
type HeaderFooterArea struct {
	HeightPx float64     `json:"heightPx"`
	Metrics  AreaMetrics `json:"metrics"`
	ID       string      `json:"id,omitempty"`
	Kind     string      `json:"kind,omitempty"`
	Role     string      `json:"role,omitempty"`
}

// HeaderFooterAreas groups the two bands of a page.
type HeaderFooterAreas struct {
	Header *HeaderFooterArea `json:"header,omitempty"`
	Footer *HeaderFooterArea `json:"footer,omitempty"`
}

// Page is one computed page.
type Page struct {
	PageIndex           int               `json:"pageIndex"`
	Break               Break             `json:"break"`
	Metrics             Metrics           `json:"metrics"`
	PageTopOffsetPx     float64           `json:"pageTopOffsetPx"`
	PageBottomSpacingPx float64           `json:"pageBottomSpacingPx"`
	HeaderFooterAreas   HeaderFooterAreas `json:"headerFooterAreas"`
}

// Units records the coordinate system of a result set.
type Units struct {
	Unit string `json:"unit"`
	DPI  int    `json:"dpi"`
}

// Result is the output of GeneratePageBreaks.
type Result struct {
	Doc   *dom.Document `json:"-"`
	Units Units         `json:"units"`
	Pages []Page        `json:"pages"`
}

// BreakResult is one candidate split point produced by the break finder.
type BreakResult struct {
	Top          float64
	Bottom       float64
	FittedTop    float64
	FittedBottom float64
	Pos          int
}

// SectionSummary is the measured description of one header or footer
// section, supplied by the injected resolver.
type SectionSummary struct {
	HeightPx          float64
	OffsetPx          float64
	ContentHeightPx   float64
	EffectiveHeightPx float64
	ID                string
	Kind              string
	Role              string
}

// HeaderFooter carries the sections resolved for one page. Either band may
// be nil when the page has none.
type HeaderFooter struct {
	Header *SectionSummary
	Footer *SectionSummary
}

// HeaderFooterResolver supplies per-page header/footer sections. isLastPage
// is set when the driver re-resolves the terminal page, whose sections can
// legitimately differ.
type HeaderFooterResolver func(pageIndex int, isLastPage bool) HeaderFooter

// area converts a resolved summary into the page-facing form.
func (s *SectionSummary) area() *HeaderFooterArea {
	if s == nil {
		return nil
	}
	return &HeaderFooterArea{
		HeightPx: s.HeightPx,
		Metrics: AreaMetrics{
			OffsetPx:          s.OffsetPx,
			ContentHeightPx:   s.ContentHeightPx,
			EffectiveHeightPx: s.EffectiveHeightPx,
		},
		ID:   s.ID,
		Kind: s.Kind,
		Role: s.Role,
	}
}

// clampResult normalizes a raw candidate into the guaranteed ordering
// pageStart ≤ fittedTop ≤ fittedBottom ≤ pageLimit.
func clampResult(r BreakResult, pageStart, pageLimit float64, lowerBoundPos int) BreakResult {
	r.FittedBottom = geo.Clamp(geo.FiniteOr(r.Bottom, pageLimit), pageStart, pageLimit)
	r.FittedTop = geo.Clamp(geo.FiniteOr(r.Top, pageStart), pageStart, r.FittedBottom)
	if r.Pos < lowerBoundPos {
		r.Pos = lowerBoundPos
	}
	return r
}
