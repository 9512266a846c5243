package converter

import (
	"immunization-tracker/internal/catalog"
	"immunization-tracker/internal/delivery/dto"
)

func VaccineInfoToResponse(v catalog.Vaccine) *dto.VaccineInfoResponse {
	return &dto.VaccineInfoResponse{
		Name:                  v.Name,
		ScheduledAge:          v.ScheduledAge,
		ProtectsAgainst:       nonNil(v.ProtectsAgainst),
		Type:                  v.Type,
		Route:                 v.Route,
		SideEffects:           nonNil(v.SideEffects),
		SpecialConsiderations: nonNil(v.SpecialConsiderations),
	}
}

func VaccineInfosToResponses(vaccines []catalog.Vaccine) []dto.VaccineInfoResponse {
	responses := make([]dto.VaccineInfoResponse, len(vaccines))
	for i, v := range vaccines {
		responses[i] = *VaccineInfoToResponse(v)
	}
	return responses
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
