package converter

import (
	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The PIN hash
// never leaves the entity.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
