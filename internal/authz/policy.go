// Package authz holds the single authorization policy consulted by every
// protected operation, instead of per-route ownership comparisons.
package authz

import (
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/models"
	"github.com/google/uuid"
)

type Action string

const (
	ViewEvent   Action = "event:view"
	DeleteEvent Action = "event:delete"
	UploadPhoto Action = "photo:upload"
	ListPhotos  Action = "photo:list"
	DeletePhoto Action = "photo:delete"
)

// MembershipChecker answers participation queries; satisfied by the
// membership service.
type MembershipChecker interface {
	IsMember(eventID, userID uuid.UUID) (bool, error)
}

type Policy struct {
	members MembershipChecker
}

func New(members MembershipChecker) *Policy {
	return &Policy{members: members}
}

// Allow decides whether caller may perform action on the given event.
// photo is consulted only for photo-scoped actions and may be nil otherwise.
//
//   - ViewEvent / UploadPhoto / ListPhotos: any member of the event.
//   - DeleteEvent: the event creator only.
//   - DeletePhoto: the photo's uploader or the event creator.
func (p *Policy) Allow(caller uuid.UUID, action Action, event *models.Event, photo *models.Photo) (bool, error) {
	switch action {
	case ViewEvent, UploadPhoto, ListPhotos:
		return p.members.IsMember(event.ID, caller)
	case DeleteEvent:
		return event.CreatorID == caller, nil
	case DeletePhoto:
		if photo == nil {
			return false, nil
		}
		return photo.UploaderID == caller || event.CreatorID == caller, nil
	default:
		return false, nil
	}
}
