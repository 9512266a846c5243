package dto

import "github.com/google/uuid"

// UpdateVaccinationRequest carries the flags the operator submitted. Keys
// absent from the map keep their stored value.
type UpdateVaccinationRequest struct {
	Vaccines map[string]bool `json:"vaccines" validate:"required"`
}

type DoseStatusResponse struct {
	Label     string `json:"label"`
	Vaccine   string `json:"vaccine"`
	Offset    string `json:"offset"`
	DueDate   string `json:"due_date"`
	Completed bool   `json:"completed"`
	Status    string `json:"status,omitempty"`
}

type VaccinationStatusResponse struct {
	ChildID     uuid.UUID            `json:"child_id"`
	ChildName   string               `json:"child_name"`
	DateOfBirth string               `json:"date_of_birth"`
	Today       string               `json:"today"`
	Doses       []DoseStatusResponse `json:"doses"`
	Completed   int                  `json:"completed"`
	Total       int                  `json:"total"`
	// Unknown lists stored flags that match no occasion of the current schedule.
	Unknown  []string `json:"unknown_keys,omitempty"`
	Warnings []string `json:"-"`
}

type ScheduleVaccineResponse struct {
	Vaccine string   `json:"vaccine"`
	Offsets []string `json:"offsets"`
}

type ScheduleResponse struct {
	Vaccines []ScheduleVaccineResponse `json:"vaccines"`
}
