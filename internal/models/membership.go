package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership links a user to an event. One row per (event, user); joining
// twice is a no-op. Rows are only ever deleted together with their event.
type Membership struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_event_user" json:"event_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_event_user" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
