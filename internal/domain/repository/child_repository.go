package repository

import (
	"context"

	"immunization-tracker/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChildRepository interface {
	Create(ctx context.Context, db *gorm.DB, child *entity.Child) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Child, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.ChildFilter) ([]entity.Child, error)
	UpdateVaccines(ctx context.Context, db *gorm.DB, id uuid.UUID, vaccines string) (int64, error)
	CountByBirthYear(ctx context.Context, db *gorm.DB) ([]entity.BirthYearCount, error)
}
