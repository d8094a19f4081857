package stats

import (
	"golf-performance-system/models"
)

// neutralSlope is the fixed scaling constant of the handicap-differential
// formula. It is never replaced by the course's own slope — that only
// appears in the divisor.
const neutralSlope = 113

// par72Baseline is the flat par every adjusted scoring average is
// normalized to.
const par72Baseline = 72

// ComputeRoundHandicap computes a single round's performance-versus-par
// metric from its hole-by-hole detail. With full rating data it returns the
// standard handicap differential, (total - courseRating) * 113 / slope,
// rounded to 1 decimal; without a course or with incomplete rating data it
// falls back to plain strokes over par. A round with no hole detail returns
// nil — the aggregate score alone was never validated hole-by-hole and is
// not enough to compute a handicap.
func ComputeRoundHandicap(holes []models.RoundHoleScore, course *models.Course) (*float64, error) {
	if len(holes) == 0 {
		return nil, nil
	}

	var totalScore, totalPar int
	for _, h := range holes {
		totalScore += h.Score
		totalPar += h.Par
	}

	if course != nil && course.CourseRating != nil && course.SlopeRating != nil {
		slope := *course.SlopeRating
		if slope == 0 {
			// The course entity's accepted range (55-155) keeps zero out of
			// the divisor; reaching this is a data-integrity fault upstream.
			return nil, &ComputationError{Field: "slope_rating", Index: -1, Reason: "zero slope rating reached the differential formula"}
		}
		differential := Round1((float64(totalScore) - *course.CourseRating) * neutralSlope / float64(slope))
		return &differential, nil
	}

	relative := float64(totalScore - totalPar)
	return &relative, nil
}

// ComputeAdjustedScoringAverage expresses a round's raw score as what it
// would have been on a flat par-72 course, using the par offset only (no
// slope or rating). It is the single authority for this value: called once
// at round-insertion time, with the result persisted and never silently
// recomputed elsewhere. A nil coursePar returns nil — without the course's
// par there is nothing to normalize against.
func ComputeAdjustedScoringAverage(rawScore float64, coursePar *int) *float64 {
	if coursePar == nil {
		return nil
	}
	adjusted := par72Baseline + (rawScore - float64(*coursePar))
	return &adjusted
}
