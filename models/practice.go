package models

import (
	"time"

	"github.com/lib/pq"
)

// Score type of a practice drill: whether each shot is scored individually
// or the session produces a single final score.
const (
	ScoreTypeIndividual = "individual"
	ScoreTypeFinal      = "final"
)

// PracticeDrill is a user-defined practice exercise.
type PracticeDrill struct {
	ID          string `json:"id" gorm:"primaryKey"`
	UserID      string `json:"user_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	ScoreType   string `json:"score_type" gorm:"not null;default:'individual'"` // individual | final
	TargetShots int    `json:"target_shots" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Sessions []PracticeSession `json:"sessions,omitempty" gorm:"foreignKey:DrillID"`
}

// PracticeSession is one sitting of a drill. Scores holds per-shot values
// for individual-scored drills; FinalScore holds the single value for
// final-scored drills. Exactly one of the two is populated.
type PracticeSession struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	DrillID     string          `json:"drill_id" gorm:"not null;index"`
	UserID      string          `json:"user_id" gorm:"not null;index"`
	SessionDate time.Time       `json:"session_date" gorm:"not null;index"`
	Scores      pq.Float64Array `json:"scores,omitempty" gorm:"type:decimal(6,2)[]"`
	FinalScore  *float64        `json:"final_score,omitempty"`
	Notes       string          `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
