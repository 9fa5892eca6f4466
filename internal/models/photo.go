package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo is the metadata row for one uploaded image. The binary lives in the
// blob store under StorageKey; URL is the public address clients load.
type Photo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	UploaderID uuid.UUID `gorm:"type:uuid;not null" json:"uploader_id"`
	FileName   string    `gorm:"size:255" json:"file_name"`
	StorageKey string    `gorm:"size:512;not null" json:"storage_key"`
	URL        string    `gorm:"size:1024" json:"url"`
	Size       int64     `json:"size"`
	MimeType   string    `gorm:"size:100" json:"mime_type"`
	CreatedAt  time.Time `json:"created_at"`
}
