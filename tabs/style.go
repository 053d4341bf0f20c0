package tabs

import (
	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
)

// RawTabStop is a stop as it appears in a style definition: unnormalized
// alignment string and a position in twips.
type RawTabStop struct {
	Val      string
	PosTwips float64
	Leader   string
}

// StyleDefinition carries the tab-relevant properties of a linked paragraph
// style, in the twip units styles are authored in.
type StyleDefinition struct {
	TabStops                []RawTabStop
	IndentLeftTwips         float64
	DefaultTabDistanceTwips float64
}

// StyleProvider resolves a style id to its definition. Implementations
// typically wrap a document's style sheet; a miss falls back to document
// defaults.
type StyleProvider interface {
	ResolveStyle(styleID string) (StyleDefinition, bool)
}

// RequestFromStyle builds a layout request for a paragraph that inherits
// its stops from a linked style. Explicit stops on the paragraph itself take
// precedence and are appended after the style's, so clears can mask
// inherited stops.
func RequestFromStyle(paragraphID string, revision int64, widthPx float64, styleID string, styles StyleProvider, direct []TabStop, spans []Span) LayoutRequest {
	var stops []TabStop
	var indentPx, defaultDistancePx float64

	if styles != nil {
		if def, ok := styles.ResolveStyle(styleID); ok {
			for _, raw := range def.TabStops {
				stops = append(stops, TabStop{
					Val:    NormalizeAlignment(raw.Val),
					PosPx:  geo.TwipsToPx(raw.PosTwips),
					Leader: normalizeLeader(raw.Leader),
				})
			}
			indentPx = geo.TwipsToPx(def.IndentLeftTwips)
			if def.DefaultTabDistanceTwips > 0 {
				defaultDistancePx = geo.TwipsToPx(def.DefaultTabDistanceTwips)
			}
		}
	}
	stops = append(stops, direct...)

	req := NewLayoutRequest(paragraphID, revision, widthPx, stops, spans)
	req.IndentLeftPx = indentPx
	if defaultDistancePx > 0 {
		req.DefaultTabDistancePx = defaultDistancePx
	}
	return req
}

func normalizeLeader(v string) Leader {
	switch Leader(v) {
	case LeaderDot, LeaderHeavy, LeaderHyphen, LeaderMiddleDot, LeaderUnderscore:
		return Leader(v)
	}
	return LeaderNone
}
