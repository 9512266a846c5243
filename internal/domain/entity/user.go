package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an operator credential: an email and a bcrypt hash of a 6-digit PIN.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PIN       string    `gorm:"column:pin;type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
