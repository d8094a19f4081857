package stats

import (
	"math"
)

// Round1 rounds to 1 decimal place, half away from zero. All displayed
// metric values use this policy.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to 2 decimal places, half away from zero. Chart series
// points use this finer precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WindowMean returns the unrounded mean of values, or 0 for an empty slice.
// Deltas between windows must be computed from these unrounded means so the
// per-window display rounding never accumulates into the trend value.
func WindowMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
