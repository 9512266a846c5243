package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterChildRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	DateOfBirth   string `json:"date_of_birth" validate:"required,isodate"`
	Gender        string `json:"gender" validate:"required,oneof=Male Female Other"`
	Residence     string `json:"residence" validate:"omitempty,max=255"`
	GuardianPhone string `json:"guardian_phone" validate:"omitempty,max=20"`
}

// ChildFilterRequest is read from the query string.
type ChildFilterRequest struct {
	Name      string `json:"name" validate:"omitempty,max=255"`
	Gender    string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Residence string `json:"residence" validate:"omitempty,max=255"`
	BornFrom  string `json:"born_from" validate:"omitempty,isodate"`
	BornTo    string `json:"born_to" validate:"omitempty,isodate"`
}

// Response DTOs

type ChildResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	DateOfBirth   string    `json:"date_of_birth"`
	Gender        string    `json:"gender"`
	Residence     string    `json:"residence,omitempty"`
	GuardianPhone string    `json:"guardian_phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ChildListResponse struct {
	Children []ChildResponse `json:"children"`
	Total    int             `json:"total"`
}

type BirthYearCount struct {
	Year  int   `json:"year"`
	Total int64 `json:"total"`
}

type BirthTrendResponse struct {
	Years []BirthYearCount `json:"years"`
}
