package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a named stop in a wine-crawl event. Events with zero
// locations behave as a single flat booth of wines.
type Location struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	Address      string
	DisplayOrder int `gorm:"not null;default:0"`
	EventID      uuid.UUID
	Event        Event
}

func (location *Location) BeforeCreate(tx *gorm.DB) (err error) {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	return
}
