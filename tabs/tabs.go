// Package tabs resolves W3C/OOXML-style tab stops against measured text
// runs. Given a paragraph's stops, indentation and ordered spans it computes
// each tab's rendered width and leader; painting is left to the caller.
package tabs

import (
	"sort"
	"strings"

	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/measure"
)

// Alignment is a tab stop's alignment mode.
type Alignment string

const (
	AlignStart   Alignment = "start"
	AlignEnd     Alignment = "end"
	AlignCenter  Alignment = "center"
	AlignDecimal Alignment = "decimal"
	AlignBar     Alignment = "bar"
	AlignClear   Alignment = "clear"
)

// NormalizeAlignment folds the legacy aliases (left, right, num) onto the
// canonical values. Anything unrecognized becomes start.
func NormalizeAlignment(v string) Alignment {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "start", "left":
		return AlignStart
	case "end", "right":
		return AlignEnd
	case "center":
		return AlignCenter
	case "decimal", "num":
		return AlignDecimal
	case "bar":
		return AlignBar
	case "clear":
		return AlignClear
	}
	return AlignStart
}

// Leader is the fill style drawn in the space a tab consumes.
type Leader string

const (
	LeaderNone       Leader = "none"
	LeaderDot        Leader = "dot"
	LeaderHeavy      Leader = "heavy"
	LeaderHyphen     Leader = "hyphen"
	LeaderMiddleDot  Leader = "middleDot"
	LeaderUnderscore Leader = "underscore"
)

// TabStop is one configured stop, positioned in pixels from the paragraph's
// left edge.
type TabStop struct {
	Val    Alignment `json:"val"`
	PosPx  float64   `json:"pos"`
	Leader Leader    `json:"leader,omitempty"`
}

// SpanKind distinguishes the two span types of a layout request.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanTab
)

// Span is one ordered piece of paragraph content: either a text run or a
// tab character, each with a stable id.
type Span struct {
	ID    string
	Kind  SpanKind
	Text  string
	Style measure.TextStyle
}

// LayoutRequest describes one paragraph's tab layout problem. Revision is
// the caller's cache-invalidation key; the resolver itself is pure.
type LayoutRequest struct {
	ParagraphID          string
	Revision             int64
	ParagraphWidthPx     float64
	DefaultTabDistancePx float64
	DefaultLineLengthPx  float64
	IndentLeftPx         float64
	DecimalSeparator     string
	TabStops             []TabStop
	Spans                []Span
}

// TabMetrics is the resolved rendering of a single tab span.
type TabMetrics struct {
	WidthPx        float64   `json:"width"`
	Leader         Leader    `json:"leader,omitempty"`
	Alignment      Alignment `json:"alignment"`
	TabStopPosUsed float64   `json:"tabStopPosUsed"`
}

// LayoutResult maps tab span ids to their resolved metrics.
type LayoutResult struct {
	ParagraphID string
	Revision    int64
	Tabs        map[string]TabMetrics
}

// MinTabWidthPx is the rendering floor: a tab never renders narrower than
// this.
const MinTabWidthPx = 1.0

// DefaultTabDistancePx is half an inch at 96 dpi, Word's default interval.
const DefaultTabDistancePx = 48.0

// NewLayoutRequest builds a sanitized request: stop alignments are
// normalized, non-finite positions default to 0, stops are ordered by
// position, and the default distances get usable values.
func NewLayoutRequest(paragraphID string, revision int64, widthPx float64, stops []TabStop, spans []Span) LayoutRequest {
	req := LayoutRequest{
		ParagraphID:          paragraphID,
		Revision:             revision,
		ParagraphWidthPx:     geo.FiniteOr(widthPx, 0),
		DefaultTabDistancePx: DefaultTabDistancePx,
		DecimalSeparator:     ".",
		Spans:                spans,
	}
	req.DefaultLineLengthPx = req.ParagraphWidthPx
	for _, s := range stops {
		s.Val = NormalizeAlignment(string(s.Val))
		s.PosPx = geo.FiniteOr(s.PosPx, 0)
		if s.Leader == "" {
			s.Leader = LeaderNone
		}
		req.TabStops = append(req.TabStops, s)
	}
	sort.SliceStable(req.TabStops, func(i, j int) bool {
		return req.TabStops[i].PosPx < req.TabStops[j].PosPx
	})
	return req
}

// CalculateTabLayout resolves every tab span of the request in one forward
// pass. The measurer supplies span widths; a nil measurer measures
// everything as zero, which still produces well-formed (fallback) widths.
func CalculateTabLayout(req LayoutRequest, tm measure.TextMeasurer) LayoutResult {
	res := LayoutResult{
		ParagraphID: req.ParagraphID,
		Revision:    req.Revision,
		Tabs:        make(map[string]TabMetrics),
	}

	width := func(text string, style measure.TextStyle) float64 {
		if tm == nil || text == "" {
			return 0
		}
		return geo.FiniteOr(tm.Width(text, style), 0)
	}

	defaultDistance := req.DefaultTabDistancePx
	if !geo.IsFinite(defaultDistance) || defaultDistance <= 0 {
		defaultDistance = DefaultTabDistancePx
	}
	lineLength := req.DefaultLineLengthPx
	if !geo.IsFinite(lineLength) || lineLength <= 0 {
		lineLength = defaultDistance
	}
	separator := req.DecimalSeparator
	if separator == "" {
		separator = "."
	}

	currentX := geo.FiniteOr(req.IndentLeftPx, 0)

	for i := 0; i < len(req.Spans); i++ {
		span := req.Spans[i]
		if span.Kind == SpanText {
			currentX += width(span.Text, span.Style)
			continue
		}

		following, style := followingText(req.Spans, i+1)
		stop, hasStop := selectStop(req.TabStops, currentX)

		alignment := AlignStart
		leader := LeaderNone
		stopPos := 0.0
		tabWidth := -1.0

		if hasStop {
			alignment = NormalizeAlignment(string(stop.Val))
			if stop.Leader != "" {
				leader = stop.Leader
			}
			stopPos = stop.PosPx
			tabWidth = stopPos - currentX
			switch alignment {
			case AlignCenter:
				tabWidth -= width(following, style) / 2
			case AlignEnd:
				tabWidth -= width(following, style)
			case AlignDecimal:
				integral := following
				if idx := strings.Index(following, separator); idx >= 0 {
					integral = following[:idx]
				}
				tabWidth -= width(integral, style)
			}
		}

		if tabWidth < MinTabWidthPx {
			tabWidth = defaultDistance - mod(mod(currentX, lineLength), defaultDistance)
			if tabWidth == 0 {
				tabWidth = defaultDistance
			}
			alignment = AlignStart
			stopPos = currentX + tabWidth
		}
		if tabWidth < MinTabWidthPx {
			tabWidth = MinTabWidthPx
		}

		res.Tabs[span.ID] = TabMetrics{
			WidthPx:        tabWidth,
			Leader:         leader,
			Alignment:      alignment,
			TabStopPosUsed: stopPos,
		}
		currentX += tabWidth
	}

	return res
}

// followingText gathers the text between a tab and the next tab (or the end
// of the paragraph); centered, end and decimal alignment are computed against
// it. The style of the first following text span wins for measurement.
func followingText(spans []Span, from int) (string, measure.TextStyle) {
	var sb strings.Builder
	var style measure.TextStyle
	first := true
	for i := from; i < len(spans); i++ {
		if spans[i].Kind == SpanTab {
			break
		}
		if first {
			style = spans[i].Style
			first = false
		}
		sb.WriteString(spans[i].Text)
	}
	return sb.String(), style
}

// selectStop returns the first stop strictly past currentX. Cleared stops are
// skipped, and so are bar stops: a bar stop draws a vertical rule at its
// position but never captures a tab character. Stops are assumed ordered by
// position.
func selectStop(stops []TabStop, currentX float64) (TabStop, bool) {
	for _, s := range stops {
		if s.Val == AlignClear || s.Val == AlignBar {
			continue
		}
		if s.PosPx > currentX {
			return s, true
		}
	}
	return TabStop{}, false
}

// mod is a remainder that tolerates a non-positive modulus.
func mod(x, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := x - float64(int(x/m))*m
	if r < 0 {
		r += m
	}
	return r
}
