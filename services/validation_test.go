package services

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golf-performance-system/models"
)

func validHoles(n int) []holeScoreInput {
	holes := make([]holeScoreInput, 0, n)
	for i := 1; i <= n; i++ {
		holes = append(holes, holeScoreInput{HoleNumber: i, Par: 4, Score: 5})
	}
	return holes
}

func TestValidateHoleScores(t *testing.T) {
	require.NoError(t, validateHoleScores(validHoles(18)))
	require.NoError(t, validateHoleScores(validHoles(9)))

	assert.Error(t, validateHoleScores(nil))
	assert.Error(t, validateHoleScores(validHoles(19)))

	dup := validHoles(9)
	dup[8].HoleNumber = 1
	assert.ErrorContains(t, validateHoleScores(dup), "duplicate hole_number")

	badHole := validHoles(9)
	badHole[0].HoleNumber = 19
	assert.ErrorContains(t, validateHoleScores(badHole), "out of range")

	badPar := validHoles(9)
	badPar[2].Par = 7
	assert.ErrorContains(t, validateHoleScores(badPar), "par for hole")

	badScore := validHoles(9)
	badScore[4].Score = 16
	assert.ErrorContains(t, validateHoleScores(badScore), "score for hole")
}

func fullScorecard() []scorecardHoleInput {
	holes := make([]scorecardHoleInput, 0, 18)
	for i := 1; i <= 18; i++ {
		holes = append(holes, scorecardHoleInput{HoleNumber: i, Par: 4, Handicap: i})
	}
	return holes
}

func TestValidateScorecardHoles(t *testing.T) {
	require.NoError(t, validateScorecardHoles(fullScorecard()))

	short := fullScorecard()[:17]
	assert.ErrorContains(t, validateScorecardHoles(short), "exactly 18 holes")

	dupHandicap := fullScorecard()
	dupHandicap[17].Handicap = 1
	assert.ErrorContains(t, validateScorecardHoles(dupHandicap), "assigned twice")

	dupHole := fullScorecard()
	dupHole[17].HoleNumber = 1
	assert.ErrorContains(t, validateScorecardHoles(dupHole), "duplicate hole_number")
}

func TestSessionScore(t *testing.T) {
	final := 87.5
	withFinal := models.PracticeSession{
		Scores:     pq.Float64Array{1, 2, 3},
		FinalScore: &final,
	}
	assert.Equal(t, 87.5, sessionScore(withFinal))

	individual := models.PracticeSession{
		Scores: pq.Float64Array{8, 6, 7},
	}
	assert.InDelta(t, 7.0, sessionScore(individual), 1e-9)

	empty := models.PracticeSession{}
	assert.Equal(t, 0.0, sessionScore(empty))
}
