// Package geo provides the unit conversions and rectangle arithmetic the
// pagination and tab-layout engines are built on. All pixel values assume the
// CSS reference density of 96 dpi.
package geo

import "math"

// DPI is the fixed pixel density used for every physical-unit conversion.
const DPI = 96

const (
	twipsPerInch        = 1440
	eighthPointsPerInch = 576
	pointsPerInch       = 72
)

// TwipsToPx converts twentieths of a point (Word's native unit) to pixels.
func TwipsToPx(twips float64) float64 {
	return twips / twipsPerInch * DPI
}

// PxToTwips converts pixels to twentieths of a point.
func PxToTwips(px float64) float64 {
	return px / DPI * twipsPerInch
}

// EighthPointsToPx converts eighths of a point (OOXML border widths) to pixels.
func EighthPointsToPx(v float64) float64 {
	return v / eighthPointsPerInch * DPI
}

// PointsToPx converts PostScript points to pixels.
func PointsToPx(pt float64) float64 {
	return pt / pointsPerInch * DPI
}

// InchesToPx converts inches to pixels.
func InchesToPx(in float64) float64 {
	return in * DPI
}

// Clamp restricts v to [lo, hi]. A reversed range collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// IsFinite reports whether v is a usable measurement (not NaN or ±Inf).
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FiniteOr returns v when it is finite and fallback otherwise.
func FiniteOr(v, fallback float64) float64 {
	if IsFinite(v) {
		return v
	}
	return fallback
}
