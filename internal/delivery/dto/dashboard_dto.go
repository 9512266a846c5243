package dto

import "immunization-tracker/internal/domain/immunization"

type DashboardResponse struct {
	Today string `json:"today"`
	immunization.Summary
	Warnings []string `json:"-"`
}
