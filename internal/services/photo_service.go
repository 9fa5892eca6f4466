package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrNoFiles       = errors.New("no files uploaded")
	ErrNotPhotoOwner = errors.New("you can only delete your own photos")
)

// UploadFile is one incoming file, already size- and type-screened at the
// HTTP boundary.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type PhotoService struct {
	db     *gorm.DB
	policy *authz.Policy
	store  storage.BlobStore
}

func NewPhotoService(db *gorm.DB, policy *authz.Policy, store storage.BlobStore) *PhotoService {
	return &PhotoService{db: db, policy: policy, store: store}
}

// Upload stores a batch of files for an event. A single file's storage or
// database failure is logged and skipped; the rest of the batch proceeds.
func (s *PhotoService) Upload(ctx context.Context, userID, eventID uuid.UUID, files []UploadFile) (*dto.UploadResponse, error) {
	// Membership gate first: a non-member gets the same answer whether or
	// not the event exists.
	allowed, err := s.policy.Allow(userID, authz.UploadPhoto, &models.Event{ID: eventID}, nil)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrNotMember
	}

	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if event.Expired(time.Now()) {
		return nil, ErrEventExpired
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	uploaded := make([]dto.PhotoResponse, 0, len(files))
	for _, f := range files {
		key := storage.ObjectKey(eventID, f.Name)

		if err := s.store.Put(ctx, key, f.ContentType, f.Content, f.Size); err != nil {
			slog.Error("photo upload to storage failed", "event_id", eventID, "file", f.Name, "error", err)
			continue
		}

		photo := models.Photo{
			ID:         uuid.New(),
			EventID:    eventID,
			UploaderID: userID,
			FileName:   f.Name,
			StorageKey: key,
			URL:        s.store.PublicURL(key),
			Size:       f.Size,
			MimeType:   f.ContentType,
		}
		if err := s.db.Create(&photo).Error; err != nil {
			slog.Error("photo metadata insert failed", "event_id", eventID, "key", key, "error", err)
			continue
		}

		uploaded = append(uploaded, photoResponse(&photo))
	}

	return &dto.UploadResponse{
		Message: fmt.Sprintf("%d photo(s) uploaded successfully!", len(uploaded)),
		Photos:  uploaded,
	}, nil
}

// ListFor returns the event's photos, newest first, for a member.
func (s *PhotoService) ListFor(userID, eventID uuid.UUID) ([]dto.PhotoResponse, error) {
	allowed, err := s.policy.Allow(userID, authz.ListPhotos, &models.Event{ID: eventID}, nil)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrNotMember
	}

	var photos []models.Photo
	if err := s.db.Where("event_id = ?", eventID).Order("created_at DESC").Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	responses := make([]dto.PhotoResponse, 0, len(photos))
	for i := range photos {
		responses = append(responses, photoResponse(&photos[i]))
	}
	return responses, nil
}

// Delete removes one photo: blob first, then the metadata row. A failed blob
// delete is logged and the row delete still proceeds, trading a possible
// orphaned object for a delete that always lands; the sweep retries the
// blob when the event expires.
func (s *PhotoService) Delete(ctx context.Context, userID, photoID uuid.UUID) error {
	var photo models.Photo
	if err := s.db.First(&photo, "id = ?", photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("failed to load photo: %w", err)
	}

	// The owning event can be gone mid-cascade; an empty event still lets
	// the uploader check pass.
	var event models.Event
	if err := s.db.First(&event, "id = ?", photo.EventID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load event: %w", err)
	}

	allowed, err := s.policy.Allow(userID, authz.DeletePhoto, &event, &photo)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrNotPhotoOwner
	}

	if err := s.store.Delete(ctx, photo.StorageKey); err != nil {
		slog.Error("failed to delete photo blob", "photo_id", photo.ID, "key", photo.StorageKey, "error", err)
	}

	if err := s.db.Delete(&models.Photo{}, "id = ?", photo.ID).Error; err != nil {
		return fmt.Errorf("failed to delete photo row: %w", err)
	}
	return nil
}
