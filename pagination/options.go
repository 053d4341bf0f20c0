package pagination

import (
	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/observability"
)

// Default page geometry: US Letter at 96 dpi with one-inch margins.
const (
	DefaultPageWidthPx  = 816
	DefaultPageHeightPx = 1056
	DefaultMarginPx     = 96
)

// Margins defines the four base page margins in pixels. They are a floor:
// a header or footer taller than its margin grows the margin to fit.
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

type config struct {
	pageWidthPx  float64
	pageHeightPx float64
	margins      Margins
	pageGapPx    float64
	resolve      HeaderFooterResolver
	logger       observability.Logger
}

// Option configures the pagination engine.
type Option func(*config)

// WithPageSize sets the page dimensions in pixels.
func WithPageSize(width, height float64) Option {
	return func(c *config) {
		c.pageWidthPx = width
		c.pageHeightPx = height
	}
}

// WithMargins sets the base page margins in pixels.
func WithMargins(m Margins) Option {
	return func(c *config) {
		c.margins = m
	}
}

// WithPageGap sets the visual gap stacked between rendered pages.
func WithPageGap(gap float64) Option {
	return func(c *config) {
		c.pageGapPx = gap
	}
}

// WithHeaderFooterResolver injects the per-page header/footer collaborator.
func WithHeaderFooterResolver(r HeaderFooterResolver) Option {
	return func(c *config) {
		c.resolve = r
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l observability.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) config {
	c := config{
		pageWidthPx:  DefaultPageWidthPx,
		pageHeightPx: DefaultPageHeightPx,
		margins: Margins{
			Top: DefaultMarginPx, Bottom: DefaultMarginPx,
			Left: DefaultMarginPx, Right: DefaultMarginPx,
		},
		logger: observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	c.sanitize()
	return c
}

// sanitize replaces unusable numeric config with the documented defaults
// rather than rejecting it; pagination always runs.
func (c *config) sanitize() {
	if !geo.IsFinite(c.pageWidthPx) || c.pageWidthPx <= 0 {
		c.pageWidthPx = DefaultPageWidthPx
	}
	if !geo.IsFinite(c.pageHeightPx) || c.pageHeightPx <= 0 {
		c.pageHeightPx = DefaultPageHeightPx
	}
	c.margins.Top = geo.FiniteOr(c.margins.Top, DefaultMarginPx)
	c.margins.Bottom = geo.FiniteOr(c.margins.Bottom, DefaultMarginPx)
	c.margins.Left = geo.FiniteOr(c.margins.Left, DefaultMarginPx)
	c.margins.Right = geo.FiniteOr(c.margins.Right, DefaultMarginPx)
	if c.margins.Top < 0 {
		c.margins.Top = 0
	}
	if c.margins.Bottom < 0 {
		c.margins.Bottom = 0
	}
	if c.margins.Left < 0 {
		c.margins.Left = 0
	}
	if c.margins.Right < 0 {
		c.margins.Right = 0
	}
	if !geo.IsFinite(c.pageGapPx) || c.pageGapPx < 0 {
		c.pageGapPx = 0
	}
}
