package dto

import (
	"time"

	"github.com/google/uuid"
)

type PhotoResponse struct {
	ID           uuid.UUID `json:"id"`
	EventID      uuid.UUID `json:"event_id"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	UploaderName string    `json:"uploader_name,omitempty"`
	FileName     string    `json:"file_name"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mime_type"`
	CreatedAt    time.Time `json:"created_at"`
}

type UploadResponse struct {
	Message string          `json:"message"`
	Photos  []PhotoResponse `json:"photos"`
}

type PhotoListResponse struct {
	Photos []PhotoResponse `json:"photos"`
}
