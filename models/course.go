package models

import (
	"time"
)

// Course is a golf course's identity and rating metadata. CourseRating and
// SlopeRating are optional — not every course has full rating data, and the
// handicap math falls back to par-relative scoring without them.
type Course struct {
	ID           string   `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null;index"`
	Slug         string   `json:"slug" gorm:"uniqueIndex"`
	Par          int      `json:"par" gorm:"not null"`        // typically 70-72
	CourseRating *float64 `json:"course_rating,omitempty"`    // expected scratch score
	SlopeRating  *int     `json:"slope_rating,omitempty"`     // 55-155, neutral 113
	PhotoURL     string   `json:"photo_url,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationship: one optional scorecard template per course
	Scorecard *Scorecard `json:"scorecard,omitempty" gorm:"foreignKey:CourseID"`
}

// Scorecard is the per-course template of 18 holes.
type Scorecard struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CourseID  string    `json:"course_id" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Holes []ScorecardHole `json:"holes,omitempty" gorm:"foreignKey:ScorecardID"`
}

// ScorecardHole is one hole of a scorecard template. Handicap is the
// stroke-allocation rank, unique within a scorecard.
type ScorecardHole struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ScorecardID string    `json:"scorecard_id" gorm:"not null;uniqueIndex:idx_scorecard_hole,priority:1"`
	HoleNumber  int       `json:"hole_number" gorm:"not null;uniqueIndex:idx_scorecard_hole,priority:2"` // 1-18
	Par         int       `json:"par" gorm:"not null"`      // 3-6
	Handicap    int       `json:"handicap" gorm:"not null"` // 1-18, unique per scorecard
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
