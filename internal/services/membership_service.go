package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipService answers participation queries for the event and photo
// services. Membership is create-only within an event's lifetime; rows go
// away only when their event does.
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

func (s *MembershipService) IsMember(eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Membership{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// Add enrolls a user; joining an event twice is a no-op.
func (s *MembershipService) Add(eventID, userID uuid.UUID) error {
	var existing models.Membership
	err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	membership := models.Membership{
		ID:       uuid.New(),
		EventID:  eventID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := s.db.Create(&membership).Error; err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

func (s *MembershipService) CountFor(eventID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Membership{}).Where("event_id = ?", eventID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// ListUsers returns the full user records of everyone enrolled in the event.
func (s *MembershipService) ListUsers(eventID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Select("users.*").
		Joins("JOIN memberships ON memberships.user_id = users.id").
		Where("memberships.event_id = ?", eventID).
		Order("memberships.joined_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return users, nil
}
