package stats_test

import (
	"testing"

	"golf-performance-system/models"
	"golf-performance-system/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holesTotaling(totalScore int) []models.RoundHoleScore {
	// 18 holes of par 4 (total par 72); spread the score evenly and dump the
	// remainder on the last hole.
	holes := make([]models.RoundHoleScore, 18)
	per := totalScore / 18
	for i := range holes {
		holes[i] = models.RoundHoleScore{HoleNumber: i + 1, Par: 4, Score: per}
	}
	holes[17].Score += totalScore - per*18
	return holes
}

func ratedCourse(rating float64, slope int) *models.Course {
	return &models.Course{
		ID:           "course-1",
		Name:         "Pebble Creek",
		Par:          72,
		CourseRating: &rating,
		SlopeRating:  &slope,
	}
}

func TestComputeRoundHandicap_NoHoleDetail(t *testing.T) {
	h, err := stats.ComputeRoundHandicap(nil, ratedCourse(72.0, 113))
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestComputeRoundHandicap_NeutralSlopeDifferential(t *testing.T) {
	// (85 - 72.0) * 113 / 113 = 13.0
	h, err := stats.ComputeRoundHandicap(holesTotaling(85), ratedCourse(72.0, 113))
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.InDelta(t, 13.0, *h, 1e-9)
}

func TestComputeRoundHandicap_DifferentialRoundedToOneDecimal(t *testing.T) {
	// (90 - 71.3) * 113 / 131 = 16.129... -> 16.1
	h, err := stats.ComputeRoundHandicap(holesTotaling(90), ratedCourse(71.3, 131))
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.InDelta(t, 16.1, *h, 1e-9)
}

func TestComputeRoundHandicap_NoCourseFallsBackToPar(t *testing.T) {
	h, err := stats.ComputeRoundHandicap(holesTotaling(85), nil)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.InDelta(t, 13, *h, 1e-9) // 85 - 72, plain strokes over par
}

func TestComputeRoundHandicap_IncompleteRatingFallsBackToPar(t *testing.T) {
	rating := 72.0
	course := &models.Course{ID: "course-2", Name: "Unrated Muni", Par: 72, CourseRating: &rating}

	h, err := stats.ComputeRoundHandicap(holesTotaling(80), course)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.InDelta(t, 8, *h, 1e-9)
}

func TestComputeRoundHandicap_UnderParIsNegative(t *testing.T) {
	h, err := stats.ComputeRoundHandicap(holesTotaling(70), nil)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.InDelta(t, -2, *h, 1e-9)
}

func TestComputeRoundHandicap_ZeroSlopeIsComputationError(t *testing.T) {
	_, err := stats.ComputeRoundHandicap(holesTotaling(85), ratedCourse(72.0, 0))
	require.Error(t, err)

	var compErr *stats.ComputationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "slope_rating", compErr.Field)
}

func TestComputeAdjustedScoringAverage(t *testing.T) {
	par := 70
	adjusted := stats.ComputeAdjustedScoringAverage(85, &par)
	require.NotNil(t, adjusted)
	assert.InDelta(t, 87, *adjusted, 1e-9) // 72 + (85 - 70)

	assert.Nil(t, stats.ComputeAdjustedScoringAverage(85, nil))
}

func TestComputeAdjustedScoringAverage_ParSeventyTwoIsIdentity(t *testing.T) {
	par := 72
	adjusted := stats.ComputeAdjustedScoringAverage(79, &par)
	require.NotNil(t, adjusted)
	assert.InDelta(t, 79, *adjusted, 1e-9)
}
