package prob

import (
	"fmt"
	"math"
)

// UndefinedRatio is the display marker for likelihood ratios that cannot
// be rendered (non-finite or non-positive).
const UndefinedRatio = "undefined"

// FormatLikelihoodRatio renders a likelihood ratio for display. Ratios >= 1
// render as "X:1", ratios < 1 as their reciprocal in "1:Y" form. Precision
// drops as magnitude grows: no decimals at >= 100, one at >= 10, two below.
func FormatLikelihoodRatio(lr float64) string {
	if !(lr > 0) || math.IsInf(lr, 0) || math.IsNaN(lr) {
		return UndefinedRatio
	}
	if lr >= 1 {
		return fmt.Sprintf("%s:1", formatRatioSide(lr))
	}
	return fmt.Sprintf("1:%s", formatRatioSide(1/lr))
}

// formatRatioSide applies the magnitude-dependent precision rule to one
// side of a ratio. The argument is always >= 1 here.
func formatRatioSide(v float64) string {
	switch {
	case v >= 100:
		return fmt.Sprintf("%.0f", v)
	case v >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatPercent renders a probability as a whole percent, e.g. "42%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", ClampProbability(p)*100)
}

// FormatWoE renders a weight of evidence in decibans with one decimal and
// an explicit sign, e.g. "+3.0 dB". NaN sentinels render as a dash.
func FormatWoE(woe float64) string {
	if math.IsNaN(woe) {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f dB", woe)
}

// FormatCredits renders a signed credit delta, e.g. "+40" or "-10".
func FormatCredits(credits float64) string {
	return fmt.Sprintf("%+.0f", credits)
}
