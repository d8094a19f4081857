package models

import (
	"time"
)

// GolfRound is one played round for one user. Rounds are immutable after
// insert — there is no edit flow, only delete.
type GolfRound struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	UserID   string    `json:"user_id" gorm:"not null;index"`
	Date     time.Time `json:"date" gorm:"not null;index"` // calendar date, no time component
	CourseID *string   `json:"course_id,omitempty" gorm:"index"`

	// Per-round performance metrics. ScoringAverage is the round's total
	// strokes; the name matches the dashboard field it feeds.
	ScoringAverage      float64 `json:"scoring_average" gorm:"not null"`
	FairwaysHit         float64 `json:"fairways_hit" gorm:"not null"`
	GreensInRegulation  float64 `json:"greens_in_regulation" gorm:"not null"`
	UpAndDownPercentage float64 `json:"up_and_down_percentage" gorm:"not null"`
	PuttsPerRound       float64 `json:"putts_per_round" gorm:"not null"`
	StrokesGained       float64 `json:"strokes_gained" gorm:"not null"`

	// Written once at insert when the course par is known; never recomputed,
	// even if the course's par is edited later.
	AdjustedScoringAverage *float64 `json:"adjusted_scoring_average,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Course     *Course          `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	HoleScores []RoundHoleScore `json:"hole_scores,omitempty" gorm:"foreignKey:RoundID"`
}

// RoundHoleScore is the optional hole-by-hole detail for a round.
// A round may carry summary metrics only, with no hole detail at all.
type RoundHoleScore struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	RoundID    string    `json:"round_id" gorm:"not null;uniqueIndex:idx_round_hole,priority:1"`
	HoleNumber int       `json:"hole_number" gorm:"not null;uniqueIndex:idx_round_hole,priority:2"` // 1-18
	Par        int       `json:"par" gorm:"not null"`                                               // 3-6
	Score      int       `json:"score" gorm:"not null"`                                             // 1-15
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
