package stats_test

import (
	"math"
	"testing"
	"time"

	"golf-performance-system/models"
	"golf-performance-system/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundsWithScores(scores []float64) []models.GolfRound {
	rounds := make([]models.GolfRound, len(scores))
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, s := range scores {
		rounds[i] = models.GolfRound{
			ID:                  "round-" + string(rune('a'+i)),
			UserID:              "user-1",
			Date:                base.AddDate(0, 0, -i), // index 0 = most recent
			ScoringAverage:      s,
			FairwaysHit:         8,
			GreensInRegulation:  10,
			UpAndDownPercentage: 50,
			PuttsPerRound:       31,
			StrokesGained:       -1.5,
		}
	}
	return rounds
}

func TestComputeSnapshot_NoRounds(t *testing.T) {
	snap, err := stats.ComputeSnapshot(nil, 10)
	require.NoError(t, err)

	assert.Equal(t, stats.MetricSet{}, snap.Current)
	assert.Nil(t, snap.Previous)
	assert.Nil(t, snap.Changes)
}

func TestComputeSnapshot_FewerRoundsThanWindow(t *testing.T) {
	rounds := roundsWithScores([]float64{80, 78, 82})

	snap, err := stats.ComputeSnapshot(rounds, 10)
	require.NoError(t, err)

	assert.InDelta(t, 80.0, snap.Current.ScoringAverage, 1e-9)
	assert.Nil(t, snap.Previous, "no previous window -> nil, not zero-filled")
	assert.Nil(t, snap.Changes)
}

func TestComputeSnapshot_ExactlyWindowSize(t *testing.T) {
	rounds := roundsWithScores([]float64{80, 78, 82, 79, 81, 77, 83, 80, 79, 81})

	snap, err := stats.ComputeSnapshot(rounds, 10)
	require.NoError(t, err)

	assert.Nil(t, snap.Previous)
	assert.Nil(t, snap.Changes)
}

func TestComputeSnapshot_CurrentMeanRoundedToOneDecimal(t *testing.T) {
	// mean = 79.33... -> 79.3
	rounds := roundsWithScores([]float64{80, 78, 80})

	snap, err := stats.ComputeSnapshot(rounds, 10)
	require.NoError(t, err)

	assert.InDelta(t, 79.3, snap.Current.ScoringAverage, 1e-9)
}

func TestComputeSnapshot_TwelveRoundScenario(t *testing.T) {
	scores := []float64{80, 78, 82, 79, 81, 77, 83, 80, 79, 81, 85, 84}
	rounds := roundsWithScores(scores)

	snap, err := stats.ComputeSnapshot(rounds, 10)
	require.NoError(t, err)

	assert.InDelta(t, 80.0, snap.Current.ScoringAverage, 1e-9)
	require.NotNil(t, snap.Previous)
	assert.InDelta(t, 84.5, snap.Previous.ScoringAverage, 1e-9)
	require.NotNil(t, snap.Changes)
	assert.InDelta(t, -4.5, snap.Changes.ScoringAverage, 1e-9)
}

func TestComputeSnapshot_NoDoubleRoundingInChanges(t *testing.T) {
	// Current window mean 72.05, previous window mean 71.95. Rounding each
	// window before subtracting would give 72.1 - 72.0 and drift the delta;
	// the true change is 0.1.
	current := []float64{72.0, 72.1, 72.0, 72.1, 72.0, 72.1, 72.0, 72.1, 72.0, 72.1}
	previous := []float64{71.9, 72.0, 71.9, 72.0, 71.9, 72.0, 71.9, 72.0, 71.9, 72.0}
	rounds := roundsWithScores(append(append([]float64{}, current...), previous...))

	snap, err := stats.ComputeSnapshot(rounds, 10)
	require.NoError(t, err)

	require.NotNil(t, snap.Changes)
	assert.InDelta(t, 0.1, snap.Changes.ScoringAverage, 1e-9)
}

func TestComputeSnapshot_ChangesComputedPerField(t *testing.T) {
	rounds := roundsWithScores([]float64{80, 80, 80, 80})
	// split windows at 2: current {80, 80}, previous {80, 80}
	rounds[0].FairwaysHit = 10
	rounds[1].FairwaysHit = 9
	rounds[2].FairwaysHit = 6
	rounds[3].FairwaysHit = 7

	snap, err := stats.ComputeSnapshot(rounds, 2)
	require.NoError(t, err)

	require.NotNil(t, snap.Changes)
	assert.InDelta(t, 0.0, snap.Changes.ScoringAverage, 1e-9)
	assert.InDelta(t, 3.0, snap.Changes.FairwaysHit, 1e-9) // 9.5 - 6.5
	assert.InDelta(t, 0.0, snap.Changes.PuttsPerRound, 1e-9)
}

func TestComputeSnapshot_PartialPreviousWindow(t *testing.T) {
	// 13 rounds, window 10: previous window holds only rounds[10:13]
	scores := []float64{80, 80, 80, 80, 80, 80, 80, 80, 80, 80, 84, 85, 86}
	rounds := roundsWithScores(scores)

	snap, err := stats.ComputeSnapshot(rounds, 10)
	require.NoError(t, err)

	require.NotNil(t, snap.Previous)
	assert.InDelta(t, 85.0, snap.Previous.ScoringAverage, 1e-9)
	require.NotNil(t, snap.Changes)
	assert.InDelta(t, -5.0, snap.Changes.ScoringAverage, 1e-9)
}

func TestComputeSnapshot_DefaultWindowForNonPositiveSize(t *testing.T) {
	scores := make([]float64, 12)
	for i := range scores {
		scores[i] = 80
	}
	scores[10], scores[11] = 90, 90
	rounds := roundsWithScores(scores)

	snap, err := stats.ComputeSnapshot(rounds, 0)
	require.NoError(t, err)

	require.NotNil(t, snap.Changes)
	assert.InDelta(t, -10.0, snap.Changes.ScoringAverage, 1e-9)
}

func TestComputeSnapshot_NonFiniteMetricIsComputationError(t *testing.T) {
	rounds := roundsWithScores([]float64{80, 78})
	rounds[1].PuttsPerRound = math.NaN()

	_, err := stats.ComputeSnapshot(rounds, 10)
	require.Error(t, err)

	var compErr *stats.ComputationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "putts_per_round", compErr.Field)
	assert.Equal(t, 1, compErr.Index)
}

func TestComputeSnapshot_Idempotent(t *testing.T) {
	rounds := roundsWithScores([]float64{80, 78, 82, 79, 81, 77, 83, 80, 79, 81, 85, 84})

	first, err := stats.ComputeSnapshot(rounds, 10)
	require.NoError(t, err)
	second, err := stats.ComputeSnapshot(rounds, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLowerIsBetter(t *testing.T) {
	lower, ok := stats.LowerIsBetter("scoring_average")
	require.True(t, ok)
	assert.True(t, lower)

	lower, ok = stats.LowerIsBetter("putts_per_round")
	require.True(t, ok)
	assert.True(t, lower)

	lower, ok = stats.LowerIsBetter("fairways_hit")
	require.True(t, ok)
	assert.False(t, lower)

	_, ok = stats.LowerIsBetter("handicap")
	assert.False(t, ok)
}

func TestMetricValue(t *testing.T) {
	r := models.GolfRound{StrokesGained: 2.5}

	v, ok := stats.MetricValue(r, "strokes_gained")
	require.True(t, ok)
	assert.InDelta(t, 2.5, v, 1e-9)

	_, ok = stats.MetricValue(r, "not_a_field")
	assert.False(t, ok)
}

func TestRound1_HalfAwayFromZero(t *testing.T) {
	assert.InDelta(t, 0.2, stats.Round1(0.15), 1e-9)
	assert.InDelta(t, -0.2, stats.Round1(-0.15), 1e-9)
	assert.InDelta(t, 72.1, stats.Round1(72.05), 1e-9)
}
