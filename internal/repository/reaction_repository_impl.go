package repository

import (
	"context"

	"immunization-tracker/internal/domain/entity"
	domainRepo "immunization-tracker/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reactionRepository struct{}

func NewReactionRepository() domainRepo.ReactionRepository {
	return &reactionRepository{}
}

func (r *reactionRepository) Create(ctx context.Context, db *gorm.DB, reaction *entity.Reaction) error {
	return db.WithContext(ctx).Create(reaction).Error
}

func (r *reactionRepository) FindByChildID(ctx context.Context, db *gorm.DB, childID uuid.UUID) ([]entity.Reaction, error) {
	var reactions []entity.Reaction
	err := db.WithContext(ctx).Where("child_id = ?", childID).Order("date DESC, id DESC").Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	return reactions, nil
}
