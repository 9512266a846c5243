package entity

import (
	"time"

	"github.com/google/uuid"
)

// Child is a registered child. Only Vaccines changes after registration.
type Child struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null;index" json:"name"`
	DateOfBirth   time.Time `gorm:"column:dob;type:date;not null" json:"date_of_birth"`
	Gender        string    `gorm:"type:varchar(10)" json:"gender"`
	Residence     string    `gorm:"type:varchar(255);index" json:"residence,omitempty"`
	GuardianPhone string    `gorm:"column:phone;type:varchar(20)" json:"guardian_phone,omitempty"`
	// Vaccines is the serialized status map. It is kept as text so that a
	// malformed legacy value can still be read and reported.
	Vaccines  string    `gorm:"type:text;not null;default:'{}'" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Reactions []Reaction `gorm:"foreignKey:ChildID" json:"reactions,omitempty"`
}

func (Child) TableName() string {
	return "children"
}

// Gender values accepted at registration
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// BirthYearCount is one bar of the registrations-by-birth-year chart.
type BirthYearCount struct {
	Year  int
	Total int64
}
