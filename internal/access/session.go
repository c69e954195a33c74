package access

import (
	"time"

	"github.com/google/uuid"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

// Session is the client-held record of which guest joined which event. It
// is rebuilt on every successful join and never reconciled against the
// server afterward: a re-entry flow must re-resolve the event and
// re-provision the identity rather than trust a stored session's
// freshness. ExpiresAt mirrors the identity's expiration at build time.
type Session struct {
	UserID      uuid.UUID         `json:"userId"`
	DisplayName string            `json:"displayName"`
	Email       string            `json:"email"`
	IsTemp      bool              `json:"isTemp"`
	AccessType  models.AccessMode `json:"accessType"`
	EventID     uuid.UUID         `json:"eventId"`
	ExpiresAt   *time.Time        `json:"expiresAt"`
}

// BuildSession is pure construction; no I/O.
func BuildSession(event *models.Event, identity *models.Profile, mode models.AccessMode) Session {
	return Session{
		UserID:      identity.ID,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		IsTemp:      true,
		AccessType:  mode,
		EventID:     event.ID,
		ExpiresAt:   identity.ExpiresAt,
	}
}
