package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile covers both organizer accounts (password-backed) and temporary
// guest identities provisioned during a join. Email is stored normalized
// (trimmed, lower-cased); the unique index is the only serialization
// guarantee against concurrent guest creates for the same address.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Email        string    `gorm:"not null;uniqueIndex"`
	DisplayName  string    `gorm:"not null"`
	PasswordHash string
	IsTemporary  bool `gorm:"not null;default:false"`
	IsAdmin      bool `gorm:"not null;default:false"`
	// ExpiresAt is advisory metadata for an external cleanup process; the
	// core never deletes expired profiles itself.
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (profile *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return
}
