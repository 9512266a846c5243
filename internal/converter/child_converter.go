package converter

import (
	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func ChildToResponse(child *entity.Child) *dto.ChildResponse {
	if child == nil {
		return nil
	}

	return &dto.ChildResponse{
		ID:            child.ID,
		Name:          child.Name,
		DateOfBirth:   child.DateOfBirth.Format(dateLayout),
		Gender:        child.Gender,
		Residence:     child.Residence,
		GuardianPhone: child.GuardianPhone,
		CreatedAt:     child.CreatedAt,
	}
}

func ChildrenToResponses(children []entity.Child) []dto.ChildResponse {
	responses := make([]dto.ChildResponse, len(children))
	for i := range children {
		responses[i] = *ChildToResponse(&children[i])
	}
	return responses
}

func BirthYearCountsToResponse(counts []entity.BirthYearCount) *dto.BirthTrendResponse {
	years := make([]dto.BirthYearCount, len(counts))
	for i, c := range counts {
		years[i] = dto.BirthYearCount{Year: c.Year, Total: c.Total}
	}
	return &dto.BirthTrendResponse{Years: years}
}
