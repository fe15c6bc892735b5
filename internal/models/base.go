package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the calendar-date format used for cache partitioning.
const DateLayout = "2006-01-02"

// Base is the base model for all entities. IDs are UUID strings.
type Base struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
