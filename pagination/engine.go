package pagination

import (
	"time"

	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/measure"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/observability"
)

// Engine runs pagination passes over documents. It is stateless between
// runs; every run owns a private accumulator and measurement cache, so a
// single Engine may be reused across recomputations (the caller serializes
// them — two overlapping runs for one document are not supported).
type Engine struct {
	cfg config
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...Option) *Engine {
	return &Engine{cfg: newConfig(opts...)}
}

// GeneratePageBreaks computes the full page list for a document. It never
// returns an error and never panics: measurement failures degrade to the
// next strategy, and the worst case is a single page covering the whole
// document.
func GeneratePageBreaks(doc *dom.Document, provider measure.Provider, opts ...Option) *Result {
	return NewEngine(opts...).GeneratePageBreaks(doc, provider)
}

// runState is the transient accumulator of one pagination walk.
type runState struct {
	pageStart    float64
	pageIndex    int
	blockIndex   int
	lastBreakPos int
	layout       pageLayout
	pages        []Page

	// Running bottom of content that fit without forcing a break.
	fittedBottom float64
	haveFitted   bool

	breaks int
}

// GeneratePageBreaks implements the block walk described in the package
// documentation.
func (e *Engine) GeneratePageBreaks(doc *dom.Document, provider measure.Provider) *Result {
	start := time.Now()
	cfg := e.cfg
	f := &finder{doc: doc, cache: newMeasureCache(provider), log: cfg.logger}

	blocks := doc.Blocks()
	st := &runState{layout: cfg.resolveLayout(0, false)}
	st.pages = append(st.pages, e.openPage(st, 0))

	// A block taller than every page is re-examined once per emitted break;
	// the ceiling stops a break finder that cannot make progress.
	maxBreaks := 4*len(blocks) + 64

	for st.blockIndex = 0; st.blockIndex < len(blocks); st.blockIndex++ {
		if st.layout.usableHeight <= 0 {
			cfg.logger.Warn("page has no usable height, pagination stops subdividing",
				observability.Int("pageIndex", st.pageIndex))
			break
		}
		if st.breaks >= maxBreaks {
			cfg.logger.Warn("break ceiling reached, folding remaining content into last page",
				observability.Int("breaks", st.breaks))
			break
		}

		block := blocks[st.blockIndex]
		rect, ok := f.cache.boundingRect(block)
		if !ok {
			continue
		}
		// Content already fully behind the page start; happens after a break
		// repositions the cursor backward to re-examine a consumed block.
		if rect.Bottom <= st.pageStart {
			continue
		}

		pageLimit := st.pageStart + st.layout.usableHeight
		q := breakQuery{
			block:         block,
			pageStart:     st.pageStart,
			pageLimit:     pageLimit,
			lowerBoundPos: st.lastBreakPos,
		}

		if r, ok := f.attemptHardBreak(q); ok {
			e.recordBreak(st, clampResult(r, q.pageStart, q.pageLimit, q.lowerBoundPos))
			continue
		}

		if rect.Bottom > pageLimit {
			r, ok := f.findBreak(q)
			if !ok {
				// Nothing measurable to split on; let the block overflow
				// visually rather than fail the run.
				st.accumulate(min(rect.Bottom, pageLimit))
				continue
			}
			e.recordBreak(st, r)
			continue
		}

		// The block fits by its bounding rect, but table rect measurement is
		// not trusted alone: re-check at row precision.
		if block.Kind == dom.KindTable {
			if r, ok := f.attemptTable(q); ok {
				e.recordBreak(st, clampResult(r, q.pageStart, q.pageLimit, q.lowerBoundPos))
				continue
			}
		}

		st.accumulate(rect.Bottom)
	}

	e.finalize(st)

	cfg.logger.Info("pagination complete",
		observability.Int(observability.MetricBlockCount, len(blocks)),
		observability.Int(observability.MetricPageCount, len(st.pages)),
		observability.Int(observability.MetricBreakCount, st.breaks),
		observability.Float64(observability.MetricPaginationTime, float64(time.Since(start))/float64(time.Millisecond)))

	return &Result{
		Doc:   doc,
		Units: Units{Unit: "px", DPI: 96},
		Pages: st.pages,
	}
}

// accumulate tracks the bottom of content that fit on the current page.
func (st *runState) accumulate(bottom float64) {
	if !st.haveFitted || bottom > st.fittedBottom {
		st.fittedBottom = bottom
	}
	st.haveFitted = true
}

// openPage creates the page entry that begins at st.pageStart.
func (e *Engine) openPage(st *runState, topOffset float64) Page {
	return Page{
		PageIndex:       st.pageIndex,
		Metrics:         e.cfg.metrics(st.layout),
		PageTopOffsetPx: topOffset,
		Break:           Break{StartOffsetPx: st.pageStart, Pos: LastPagePos},
		HeaderFooterAreas: HeaderFooterAreas{
			Header: st.layout.header.area(),
			Footer: st.layout.footer.area(),
		},
	}
}

// recordBreak closes the current page at the resolved split, advances the
// page cursor, and re-examines the same block against the new page (a block
// may split across more than two pages).
func (e *Engine) recordBreak(st *runState, r BreakResult) {
	pageLimit := st.pageStart + st.layout.usableHeight

	// Strict forward progress: a break that fails to advance the page start
	// would loop on a block taller than any page. Consume the full page.
	if r.FittedBottom <= st.pageStart {
		r.FittedBottom = pageLimit
		if r.Bottom < pageLimit {
			r.Bottom = pageLimit
		}
		if r.FittedTop > r.FittedBottom {
			r.FittedTop = r.FittedBottom
		}
	}

	cur := &st.pages[len(st.pages)-1]
	cur.Break.Pos = r.Pos
	cur.Break.Top = r.Top
	cur.Break.Bottom = r.Bottom
	cur.Break.FittedTop = r.FittedTop
	cur.Break.FittedBottom = r.FittedBottom
	if spacing := pageLimit - r.FittedBottom; spacing > 0 {
		cur.PageBottomSpacingPx = spacing
	}

	e.cfg.logger.Debug("page break recorded",
		observability.Int("pageIndex", st.pageIndex),
		observability.Int("pos", r.Pos),
		observability.Float64("fittedBottom", r.FittedBottom))

	if r.Pos > st.lastBreakPos {
		st.lastBreakPos = r.Pos
	}
	st.pageStart = r.FittedBottom
	st.pageIndex++
	st.blockIndex--
	st.breaks++
	st.haveFitted = false
	st.fittedBottom = 0

	st.layout = e.cfg.resolveLayout(st.pageIndex, false)
	topOffset := cur.PageTopOffsetPx + e.cfg.pageHeightPx + e.cfg.pageGapPx
	st.pages = append(st.pages, e.openPage(st, topOffset))
}

// finalize folds the trailing fitted bottom into the last page and
// re-resolves it as the terminal page, whose header/footer sizing can differ.
func (e *Engine) finalize(st *runState) {
	last := &st.pages[len(st.pages)-1]

	bottom := st.pageStart
	if st.haveFitted && st.fittedBottom > bottom {
		bottom = st.fittedBottom
	}
	last.Break.Pos = LastPagePos
	last.Break.Top = st.pageStart
	last.Break.Bottom = bottom
	last.Break.FittedTop = st.pageStart
	last.Break.FittedBottom = bottom

	layout := e.cfg.resolveLayout(last.PageIndex, true)
	last.Metrics = e.cfg.metrics(layout)
	last.HeaderFooterAreas = HeaderFooterAreas{
		Header: layout.header.area(),
		Footer: layout.footer.area(),
	}
	if spacing := st.pageStart + layout.usableHeight - bottom; spacing > 0 {
		last.PageBottomSpacingPx = spacing
	} else {
		last.PageBottomSpacingPx = 0
	}
}
