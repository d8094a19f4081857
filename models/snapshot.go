package models

import (
	"time"
)

// StatSnapshotCache is a precomputed dashboard snapshot for one user,
// refreshed by the scheduler. Snapshot holds the serialized stats.Snapshot;
// RoundCount is the number of rounds it was computed over, used to detect
// staleness cheaply.
type StatSnapshotCache struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"uniqueIndex;not null"`
	WindowSize int       `json:"window_size" gorm:"not null;default:10"`
	Snapshot   string    `json:"snapshot" gorm:"type:jsonb;not null"`
	RoundCount int64     `json:"round_count" gorm:"not null;default:0"`
	ComputedAt time.Time `json:"computed_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
