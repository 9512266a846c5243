package repository

import (
	"context"

	"immunization-tracker/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionRepository is append-only.
type ReactionRepository interface {
	Create(ctx context.Context, db *gorm.DB, reaction *entity.Reaction) error
	FindByChildID(ctx context.Context, db *gorm.DB, childID uuid.UUID) ([]entity.Reaction, error)
}
