package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessMode string

const (
	AccessModeStandard  AccessMode = "standard"
	AccessModeEmailOnly AccessMode = "email_only"
)

func (m AccessMode) Valid() bool {
	return m == AccessModeStandard || m == AccessModeEmailOnly
}

type Event struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
	Location    string
	Description string
	AccessCode  string     `gorm:"not null;uniqueIndex"`
	AccessMode  AccessMode `gorm:"not null;default:'standard'"`
	IsActive    bool       `gorm:"not null;default:true"`

	// Booth customization, opaque to the join and analytics logic.
	BoothIcon           string
	BoothTitle          string
	BoothPrimaryColor   string
	BoothSecondaryColor string

	// DeletedBy complements gorm.Model's DeletedAt; both are cleared on
	// restore. Permanent removal after the 30-day window is an external
	// cleanup job's concern.
	DeletedBy *uuid.UUID `gorm:"type:uuid"`

	ProfileID uuid.UUID
	Profile   Profile
	Locations []Location
	Wines     []Wine
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
