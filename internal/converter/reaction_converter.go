package converter

import (
	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"
)

func ReactionToResponse(r *entity.Reaction) *dto.ReactionResponse {
	if r == nil {
		return nil
	}

	return &dto.ReactionResponse{
		ID:        r.ID,
		ChildID:   r.ChildID,
		Vaccine:   r.Vaccine,
		Date:      r.Date.Format(dateLayout),
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
}

func ReactionsToResponses(reactions []entity.Reaction) []dto.ReactionResponse {
	responses := make([]dto.ReactionResponse, len(reactions))
	for i := range reactions {
		responses[i] = *ReactionToResponse(&reactions[i])
	}
	return responses
}
