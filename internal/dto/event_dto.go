package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Password    string `json:"password" validate:"required"`
	Description string `json:"description" validate:"max=2000"`
}

type JoinEventRequest struct {
	InviteCode string `json:"invite_code" validate:"required,len=8"`
	Password   string `json:"password" validate:"required"`
}

// EventResponse is an event with its password credential stripped.
type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   uuid.UUID `json:"creator_id"`
	InviteCode  string    `json:"invite_code"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventSummary is one row of the dashboard listing.
type EventSummary struct {
	EventResponse
	PhotoCount       int64  `json:"photo_count"`
	ParticipantCount int64  `json:"participant_count"`
	CreatorName      string `json:"creator_name"`
	IsCreator        bool   `json:"is_creator"`
}

type ParticipantResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type EventDetailResponse struct {
	Event        EventSummary          `json:"event"`
	Participants []ParticipantResponse `json:"participants"`
	Photos       []PhotoResponse       `json:"photos"`
}

type EventEnvelope struct {
	Message string        `json:"message,omitempty"`
	Event   EventResponse `json:"event"`
}

type EventListResponse struct {
	Events []EventSummary `json:"events"`
}
