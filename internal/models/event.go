package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a password-protected, time-boxed photo collection. ExpiresAt is
// fixed at creation (CreatedAt + retention window) and never moves.
// InviteCode is stored uppercased; the unique index makes it globally unique
// among live events.
type Event struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	PasswordHash string    `gorm:"not null" json:"-"`
	InviteCode   string    `gorm:"size:8;not null;uniqueIndex" json:"invite_code"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Expired reports whether the event has passed its retention window.
func (e *Event) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
