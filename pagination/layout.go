package pagination

// pageLayout is one page's resolved geometry: base margins inflated by
// whatever header/footer the resolver reports for that page.
type pageLayout struct {
	effectiveTopMargin    float64
	effectiveBottomMargin float64
	usableHeight          float64
	header                *SectionSummary
	footer                *SectionSummary
}

// resolveLayout derives the usable content region of one page. The base
// margins are a floor; a taller header or footer widens its margin so the
// band is never clipped. Margins that exceed the page collapse the usable
// height to zero, which the driver treats as "no content fits".
func (c *config) resolveLayout(pageIndex int, isLastPage bool) pageLayout {
	var hf HeaderFooter
	if c.resolve != nil {
		hf = c.resolve(pageIndex, isLastPage)
	}

	top := c.margins.Top
	if hf.Header != nil && hf.Header.EffectiveHeightPx > top {
		top = hf.Header.EffectiveHeightPx
	}
	bottom := c.margins.Bottom
	if hf.Footer != nil && hf.Footer.EffectiveHeightPx > bottom {
		bottom = hf.Footer.EffectiveHeightPx
	}

	usable := c.pageHeightPx - top - bottom
	if usable < 0 {
		usable = 0
	}
	return pageLayout{
		effectiveTopMargin:    top,
		effectiveBottomMargin: bottom,
		usableHeight:          usable,
		header:                hf.Header,
		footer:                hf.Footer,
	}
}

// metrics materializes the page-facing metrics for a resolved layout.
func (c *config) metrics(l pageLayout) Metrics {
	contentWidth := c.pageWidthPx - c.margins.Left - c.margins.Right
	if contentWidth < 0 {
		contentWidth = 0
	}
	m := Metrics{
		PageHeightPx:    c.pageHeightPx,
		PageWidthPx:     c.pageWidthPx,
		MarginTopPx:     l.effectiveTopMargin,
		MarginBottomPx:  l.effectiveBottomMargin,
		MarginLeftPx:    c.margins.Left,
		MarginRightPx:   c.margins.Right,
		ContentHeightPx: l.usableHeight,
		ContentWidthPx:  contentWidth,
		PageGapPx:       c.pageGapPx,
	}
	if l.header != nil {
		m.HeaderHeightPx = l.header.HeightPx
	}
	if l.footer != nil {
		m.FooterHeightPx = l.footer.HeightPx
	}
	return m
}
