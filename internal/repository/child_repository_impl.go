package repository

import (
	"context"
	"errors"
	"strings"

	"immunization-tracker/internal/domain/entity"
	domainRepo "immunization-tracker/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type childRepository struct{}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func NewChildRepository() domainRepo.ChildRepository {
	return &childRepository{}
}

func (r *childRepository) Create(ctx context.Context, db *gorm.DB, child *entity.Child) error {
	return db.WithContext(ctx).Create(child).Error
}

func (r *childRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Child, error) {
	var child entity.Child
	err := db.WithContext(ctx).Where("id = ?", id).First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &child, nil
}

// FindAll scans the whole table, narrowed by the optional filter.
func (r *childRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.ChildFilter) ([]entity.Child, error) {
	var children []entity.Child
	query := db.WithContext(ctx)

	if filter != nil {
		if filter.Name != "" {
			query = query.Where("name ILIKE ?", containsPattern(filter.Name))
		}
		if filter.Gender != "" {
			query = query.Where("gender = ?", filter.Gender)
		}
		if filter.Residence != "" {
			query = query.Where("residence ILIKE ?", containsPattern(filter.Residence))
		}
		if filter.BornFrom != nil {
			query = query.Where("dob >= ?", filter.BornFrom.Format("2006-01-02"))
		}
		if filter.BornTo != nil {
			query = query.Where("dob <= ?", filter.BornTo.Format("2006-01-02"))
		}
	}

	err := query.Order("name ASC, dob ASC").Find(&children).Error
	if err != nil {
		return nil, err
	}
	return children, nil
}

// UpdateVaccines overwrites the stored status text of one child. Merging
// with the previous value is the caller's job.
func (r *childRepository) UpdateVaccines(ctx context.Context, db *gorm.DB, id uuid.UUID, vaccines string) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Child{}).Where("id = ?", id).Update("vaccines", vaccines)
	return result.RowsAffected, result.Error
}

func (r *childRepository) CountByBirthYear(ctx context.Context, db *gorm.DB) ([]entity.BirthYearCount, error) {
	var counts []entity.BirthYearCount
	err := db.WithContext(ctx).
		Model(&entity.Child{}).
		Select("CAST(EXTRACT(YEAR FROM dob) AS integer) AS year, COUNT(*) AS total").
		Group("year").
		Order("year ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
