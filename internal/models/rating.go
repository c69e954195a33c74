package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating rows form a multiset: a guest may rate the same wine more than
// once and every row is kept. Aggregation never assumes one row per
// (profile, wine) pair.
type Rating struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Stars       int       `gorm:"not null"`
	Note        string
	WineID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Wine        Wine
	ProfileID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Profile     Profile
	Descriptors []Descriptor
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (rating *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	return
}

// WouldBuy is derived, never stored.
func (rating *Rating) WouldBuy() bool {
	return rating.Stars >= 4
}

// Descriptor is a named sensory tag attached to a rating.
type Descriptor struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null"`
	Intensity int       `gorm:"not null;default:3"`
	RatingID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
}

func (descriptor *Descriptor) BeforeCreate(tx *gorm.DB) (err error) {
	if descriptor.ID == uuid.Nil {
		descriptor.ID = uuid.New()
	}
	return
}
