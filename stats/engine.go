package stats

import (
	"math"

	"golf-performance-system/models"
)

// DefaultWindowSize is the number of most-recent rounds in the "current"
// window when the caller doesn't ask for a specific size.
const DefaultWindowSize = 10

// MetricSet holds one value per tracked performance metric.
type MetricSet struct {
	ScoringAverage      float64 `json:"scoring_average"`
	FairwaysHit         float64 `json:"fairways_hit"`
	GreensInRegulation  float64 `json:"greens_in_regulation"`
	UpAndDownPercentage float64 `json:"up_and_down_percentage"`
	PuttsPerRound       float64 `json:"putts_per_round"`
	StrokesGained       float64 `json:"strokes_gained"`
}

// Snapshot is the rolling-window view of a user's recent performance.
// Previous and Changes are nil — never zero-filled — when there is no
// previous window, so "no trend data" stays distinguishable from
// "zero trend".
type Snapshot struct {
	Current  MetricSet  `json:"current"`
	Previous *MetricSet `json:"previous,omitempty"`
	Changes  *MetricSet `json:"changes,omitempty"`
}

type metricField struct {
	name        string
	extract     func(models.GolfRound) float64
	lowerBetter bool
}

var metricFields = []metricField{
	{"scoring_average", func(r models.GolfRound) float64 { return r.ScoringAverage }, true},
	{"fairways_hit", func(r models.GolfRound) float64 { return r.FairwaysHit }, false},
	{"greens_in_regulation", func(r models.GolfRound) float64 { return r.GreensInRegulation }, false},
	{"up_and_down_percentage", func(r models.GolfRound) float64 { return r.UpAndDownPercentage }, false},
	{"putts_per_round", func(r models.GolfRound) float64 { return r.PuttsPerRound }, true},
	{"strokes_gained", func(r models.GolfRound) float64 { return r.StrokesGained }, false},
}

// ComputeSnapshot converts rounds — already ordered most-recent-first by the
// repository — into a snapshot of the current window's averages and their
// deltas versus the immediately preceding window. windowSize <= 0 selects
// DefaultWindowSize. Zero rounds is a defined case (all-zero current, nil
// previous/changes), not an error.
func ComputeSnapshot(rounds []models.GolfRound, windowSize int) (Snapshot, error) {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if len(rounds) == 0 {
		return Snapshot{}, nil
	}

	for i, r := range rounds {
		for _, f := range metricFields {
			if v := f.extract(r); math.IsNaN(v) || math.IsInf(v, 0) {
				return Snapshot{}, &ComputationError{Field: f.name, Index: i, Reason: "non-finite metric value"}
			}
		}
	}

	currentEnd := windowSize
	if currentEnd > len(rounds) {
		currentEnd = len(rounds)
	}
	current := rounds[:currentEnd]

	var previous []models.GolfRound
	if len(rounds) > windowSize {
		previousEnd := 2 * windowSize
		if previousEnd > len(rounds) {
			previousEnd = len(rounds)
		}
		previous = rounds[windowSize:previousEnd]
	}

	currentMeans := windowMeans(current)

	snap := Snapshot{Current: roundedSet(currentMeans)}
	if len(previous) == 0 {
		return snap, nil
	}

	previousMeans := windowMeans(previous)

	// Deltas come from the unrounded means of both windows; rounding each
	// window first and then subtracting would let display rounding leak
	// into the trend.
	changes := make([]float64, len(metricFields))
	for i := range metricFields {
		changes[i] = currentMeans[i] - previousMeans[i]
	}

	prevSet := roundedSet(previousMeans)
	changeSet := roundedSet(changes)
	snap.Previous = &prevSet
	snap.Changes = &changeSet
	return snap, nil
}

func windowMeans(window []models.GolfRound) []float64 {
	means := make([]float64, len(metricFields))
	values := make([]float64, len(window))
	for i, f := range metricFields {
		for j, r := range window {
			values[j] = f.extract(r)
		}
		means[i] = WindowMean(values)
	}
	return means
}

func roundedSet(vals []float64) MetricSet {
	return MetricSet{
		ScoringAverage:      Round1(vals[0]),
		FairwaysHit:         Round1(vals[1]),
		GreensInRegulation:  Round1(vals[2]),
		UpAndDownPercentage: Round1(vals[3]),
		PuttsPerRound:       Round1(vals[4]),
		StrokesGained:       Round1(vals[5]),
	}
}

// MetricValue extracts a single named metric from a round, for chart series.
// The second return is false for unknown field names.
func MetricValue(r models.GolfRound, field string) (float64, bool) {
	for _, f := range metricFields {
		if f.name == field {
			return f.extract(r), true
		}
	}
	return 0, false
}

// LowerIsBetter reports the polarity of a metric field: scoring average and
// putts per round improve downward, everything else upward. The engine never
// applies polarity itself — coloring a change is the presentation layer's
// job. The second return is false for unknown field names.
func LowerIsBetter(field string) (bool, bool) {
	for _, f := range metricFields {
		if f.name == field {
			return f.lowerBetter, true
		}
	}
	return false, false
}

// MetricFieldNames lists the queryable metric field names in display order.
func MetricFieldNames() []string {
	names := make([]string, len(metricFields))
	for i, f := range metricFields {
		names[i] = f.name
	}
	return names
}
