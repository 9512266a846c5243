package usecase

import (
	"context"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/immunization"
	"immunization-tracker/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DashboardUsecase interface {
	GetSummary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	childRepo repository.ChildRepository
	table     *immunization.Table
	clock     *Clock
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	childRepo repository.ChildRepository,
	table *immunization.Table,
	clock *Clock,
) DashboardUsecase {
	return &dashboardUsecase{
		db:        db,
		log:       log,
		childRepo: childRepo,
		table:     table,
		clock:     clock,
	}
}

// GetSummary recomputes the counters from every stored child on each call.
// Children whose stored status is unreadable count as having nothing given
// and are named in the warnings.
func (u *dashboardUsecase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	children, err := u.childRepo.FindAll(ctx, u.db, nil)
	if err != nil {
		u.log.Warnf("Failed to find children: %+v", err)
		return nil, err
	}

	records := make([]immunization.Record, len(children))
	var warnings []string
	for i := range children {
		status, w := decodeChildStatus(u.log, &children[i])
		warnings = append(warnings, childWarnings(&children[i], w)...)
		records[i] = immunization.Record{
			DateOfBirth: children[i].DateOfBirth,
			Status:      status,
		}
	}

	today := u.clock.Today()
	return &dto.DashboardResponse{
		Today:    today.Format(dateLayout),
		Summary:  immunization.Summarize(records, u.table, today),
		Warnings: warnings,
	}, nil
}
