package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const inviteCodeAttempts = 5

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventExpired       = errors.New("this event has expired")
	ErrWrongEventPassword = errors.New("incorrect event password")
	ErrNotMember          = errors.New("you do not have access to this event")
	ErrNotCreator         = errors.New("only the creator can delete this event")
)

type EventService struct {
	db        *gorm.DB
	members   *MembershipService
	policy    *authz.Policy
	store     storage.BlobStore
	retention time.Duration
}

func NewEventService(db *gorm.DB, members *MembershipService, policy *authz.Policy, store storage.BlobStore, retention time.Duration) *EventService {
	return &EventService{
		db:        db,
		members:   members,
		policy:    policy,
		store:     store,
		retention: retention,
	}
}

// Create persists a new event with a unique invite code, expiry fixed at
// now + retention, and the creator enrolled as its first member.
func (s *EventService) Create(creatorID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash event password: %w", err)
	}

	code, err := s.newInviteCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event := models.Event{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		CreatorID:    creatorID,
		PasswordHash: string(hash),
		InviteCode:   code,
		ExpiresAt:    now.Add(s.retention),
		CreatedAt:    now,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := s.members.Add(event.ID, creatorID); err != nil {
		return nil, err
	}

	resp := eventResponse(&event)
	return &resp, nil
}

// Join looks up the event by invite code (case-insensitive) and enrolls the
// caller. Joining an event the caller already belongs to succeeds without a
// second membership row; alreadyMember tells the handler which message to
// return.
func (s *EventService) Join(userID uuid.UUID, req *dto.JoinEventRequest) (resp *dto.EventResponse, alreadyMember bool, err error) {
	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))

	var event models.Event
	if err := s.db.Where("invite_code = ?", code).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrEventNotFound
		}
		return nil, false, fmt.Errorf("failed to look up event: %w", err)
	}

	if event.Expired(time.Now()) {
		return nil, false, ErrEventExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(event.PasswordHash), []byte(req.Password)); err != nil {
		return nil, false, ErrWrongEventPassword
	}

	isMember, err := s.members.IsMember(event.ID, userID)
	if err != nil {
		return nil, false, err
	}

	if !isMember {
		if err := s.members.Add(event.ID, userID); err != nil {
			return nil, false, err
		}
	}

	r := eventResponse(&event)
	return &r, isMember, nil
}

// ListForUser returns every event the user belongs to, newest first, with
// the dashboard annotations.
func (s *EventService) ListForUser(userID uuid.UUID) ([]dto.EventSummary, error) {
	var events []models.Event
	err := s.db.
		Select("events.*").
		Joins("JOIN memberships ON memberships.event_id = events.id").
		Where("memberships.user_id = ?", userID).
		Order("events.created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	summaries := make([]dto.EventSummary, 0, len(events))
	for i := range events {
		summary, err := s.summarize(&events[i], userID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// Detail returns the event, its member list, and its photos (newest first)
// for a caller who is a member.
func (s *EventService) Detail(userID, eventID uuid.UUID) (*dto.EventDetailResponse, error) {
	// Membership gate first: a non-member gets the same answer whether or
	// not the event exists.
	allowed, err := s.policy.Allow(userID, authz.ViewEvent, &models.Event{ID: eventID}, nil)
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

	users, err := s.members.ListUsers(eventID)
	if err != nil {
		return nil, err
	}

	participants := make([]dto.ParticipantResponse, 0, len(users))
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		participants = append(participants, dto.ParticipantResponse{ID: u.ID, Name: u.Name, Email: u.Email})
		names[u.ID] = u.Name
	}

	var photos []models.Photo
	if err := s.db.Where("event_id = ?", eventID).Order("created_at DESC").Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to load photos: %w", err)
	}

	photoResponses := make([]dto.PhotoResponse, 0, len(photos))
	for i := range photos {
		pr := photoResponse(&photos[i])
		pr.UploaderName = names[photos[i].UploaderID]
		photoResponses = append(photoResponses, pr)
	}

	summary, err := s.summarize(&event, userID)
	if err != nil {
		return nil, err
	}

	return &dto.EventDetailResponse{
		Event:        *summary,
		Participants: participants,
		Photos:       photoResponses,
	}, nil
}

// Delete removes the event and everything it owns: blobs first, then photo
// rows, memberships, and the event row. Only the creator may delete.
func (s *EventService) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to load event: %w", err)
	}

	allowed, err := s.policy.Allow(userID, authz.DeleteEvent, &event, nil)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrNotCreator
	}

	return s.purge(ctx, &event)
}

// CleanupExpired purges every event whose expiry has passed. Per-event
// failures are logged and the batch continues; a second run over the same
// event finds nothing and is a no-op.
func (s *EventService) CleanupExpired(ctx context.Context) (int, error) {
	var expired []models.Event
	if err := s.db.Where("expires_at <= ?", time.Now()).Find(&expired).Error; err != nil {
		return 0, fmt.Errorf("failed to find expired events: %w", err)
	}

	purged := 0
	for i := range expired {
		if err := s.purge(ctx, &expired[i]); err != nil {
			slog.Error("failed to purge expired event", "event_id", expired[i].ID, "error", err)
			continue
		}
		purged++
	}
	return purged, nil
}

// purge runs the deletion cascade. Blobs go first so a metadata row never
// outlives its blob except on a failed blob delete, which the next sweep
// retries. Every sub-step tolerates already-gone state, so a delete racing
// a sweep cannot hard-fail.
func (s *EventService) purge(ctx context.Context, event *models.Event) error {
	var photos []models.Photo
	if err := s.db.Where("event_id = ?", event.ID).Find(&photos).Error; err != nil {
		return fmt.Errorf("failed to list photos for purge: %w", err)
	}

	for i := range photos {
		if err := s.store.Delete(ctx, photos[i].StorageKey); err != nil {
			slog.Error("failed to delete photo blob", "event_id", event.ID, "key", photos[i].StorageKey, "error", err)
		}
	}

	if err := s.db.Where("event_id = ?", event.ID).Delete(&models.Photo{}).Error; err != nil {
		return fmt.Errorf("failed to delete photo rows: %w", err)
	}
	if err := s.db.Where("event_id = ?", event.ID).Delete(&models.Membership{}).Error; err != nil {
		return fmt.Errorf("failed to delete memberships: %w", err)
	}
	if err := s.db.Delete(&models.Event{}, "id = ?", event.ID).Error; err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

func (s *EventService) summarize(event *models.Event, userID uuid.UUID) (*dto.EventSummary, error) {
	var photoCount int64
	if err := s.db.Model(&models.Photo{}).Where("event_id = ?", event.ID).Count(&photoCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}

	participantCount, err := s.members.CountFor(event.ID)
	if err != nil {
		return nil, err
	}

	creatorName := "Unknown"
	var creator models.User
	if err := s.db.First(&creator, "id = ?", event.CreatorID).Error; err == nil {
		creatorName = creator.Name
	}

	return &dto.EventSummary{
		EventResponse:    eventResponse(event),
		PhotoCount:       photoCount,
		ParticipantCount: participantCount,
		CreatorName:      creatorName,
		IsCreator:        event.CreatorID == userID,
	}, nil
}

// newInviteCode draws 8-character uppercase codes until one is free. The
// code space makes collisions rare; the retry loop plus the unique index
// covers the rest.
func (s *EventService) newInviteCode() (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code := strings.ToUpper(uuid.NewString()[:8])

		var count int64
		if err := s.db.Model(&models.Event{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check invite code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("failed to generate a unique invite code")
}

func eventResponse(event *models.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		CreatorID:   event.CreatorID,
		InviteCode:  event.InviteCode,
		ExpiresAt:   event.ExpiresAt,
		CreatedAt:   event.CreatedAt,
	}
}

func photoResponse(photo *models.Photo) dto.PhotoResponse {
	return dto.PhotoResponse{
		ID:         photo.ID,
		EventID:    photo.EventID,
		UploaderID: photo.UploaderID,
		FileName:   photo.FileName,
		URL:        photo.URL,
		Size:       photo.Size,
		MimeType:   photo.MimeType,
		CreatedAt:  photo.CreatedAt,
	}
}
