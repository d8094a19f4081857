package models

import (
	"time"

	"gorm.io/gorm"
)

// GolfUser is a local snapshot of user data needed by this service.
// Identity (passwords, sessions, OAuth) is owned entirely by the external
// identity provider; this table is populated by the profile sync worker.
type GolfUser struct {
	ID             string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string     `gorm:"uniqueIndex;not null" json:"external_user_id"` // the identity provider's UUID
	Username       string     `gorm:"index;not null" json:"username"`
	Email          string     `json:"email,omitempty"`
	FirstName      *string    `json:"first_name,omitempty"`
	LastName       *string    `json:"last_name,omitempty"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	HomeCourseID   *string    `json:"home_course_id,omitempty" gorm:"index"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	LastSeen       *time.Time `json:"last_seen,omitempty"`

	// Soft delete keeps round history readable after a profile is removed upstream.
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
