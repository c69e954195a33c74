package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Wine struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	Producer     string
	Vintage      string
	Region       string
	Varietal     string
	TastingNotes string
	ImageURL     string
	TastingOrder int `gorm:"not null;default:0"`
	EventID      uuid.UUID
	Event        Event
	LocationID   *uuid.UUID `gorm:"type:uuid"`
	Location     *Location  `gorm:"foreignKey:LocationID"`
}

func (wine *Wine) BeforeCreate(tx *gorm.DB) (err error) {
	if wine.ID == uuid.Nil {
		wine.ID = uuid.New()
	}
	return
}
