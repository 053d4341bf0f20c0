package sections

import (
	"context"

	"github.com/Harbour-Enterprises/SuperDoc-sub009/pagination"
)

// Set holds every header and footer variant of a document section
// configuration.
type Set struct {
	Sections []Section
}

// Resolver measures every section in the set and returns the per-page
// resolver the pagination engine consumes. Measurement happens once, up
// front; page resolution afterwards is pure lookup.
func (s *Set) Resolver(ctx context.Context, m *Measurer) (pagination.HeaderFooterResolver, error) {
	heights := make(map[string]float64, len(s.Sections))
	for _, sec := range s.Sections {
		h, err := m.MeasureHeight(ctx, sec)
		if err != nil {
			return nil, err
		}
		heights[sec.ID] = h
	}

	return func(pageIndex int, isLastPage bool) pagination.HeaderFooter {
		var hf pagination.HeaderFooter
		if sec, ok := s.pick(KindHeader, pageIndex, isLastPage); ok {
			hf.Header = summary(sec, heights[sec.ID])
		}
		if sec, ok := s.pick(KindFooter, pageIndex, isLastPage); ok {
			hf.Footer = summary(sec, heights[sec.ID])
		}
		return hf
	}, nil
}

// pick selects the variant for one band of one page. Specific roles beat
// the default: first on page 0, last on the terminal page, even on
// even-numbered pages (page numbers are 1-based, so odd indexes).
func (s *Set) pick(kind string, pageIndex int, isLastPage bool) (Section, bool) {
	want := func(role string) (Section, bool) {
		for _, sec := range s.Sections {
			if sec.Kind == kind && sec.Role == role {
				return sec, true
			}
		}
		return Section{}, false
	}

	if pageIndex == 0 {
		if sec, ok := want(RoleFirst); ok {
			return sec, true
		}
	}
	if isLastPage {
		if sec, ok := want(RoleLast); ok {
			return sec, true
		}
	}
	if pageIndex%2 == 1 {
		if sec, ok := want(RoleEven); ok {
			return sec, true
		}
	}
	return want(RoleDefault)
}

// summary converts a measured section into the engine-facing form. The
// effective height, which inflates the page margin, spans from the page
// edge to the band's padded bottom.
func summary(sec Section, heightPx float64) *pagination.SectionSummary {
	return &pagination.SectionSummary{
		HeightPx:          heightPx + sec.PaddingPx,
		OffsetPx:          sec.OffsetPx,
		ContentHeightPx:   heightPx,
		EffectiveHeightPx: sec.OffsetPx + heightPx + sec.PaddingPx,
		ID:                sec.ID,
		Kind:              sec.Kind,
		Role:              sec.Role,
	}
}
