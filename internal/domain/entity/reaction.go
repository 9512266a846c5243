package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reaction is an append-only adverse reaction note.
type Reaction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ChildID   uuid.UUID `gorm:"type:uuid;not null;index" json:"child_id"`
	Vaccine   string    `gorm:"type:varchar(100);not null" json:"vaccine"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Reaction) TableName() string {
	return "reactions"
}
