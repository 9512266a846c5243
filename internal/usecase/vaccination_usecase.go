package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"immunization-tracker/internal/converter"
	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"
	"immunization-tracker/internal/domain/immunization"
	"immunization-tracker/internal/domain/repository"
	"immunization-tracker/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUnknownDose = errors.New("unknown dose occasion")

// WarningMalformedStatus is surfaced when a child's stored status could not
// be read and was treated as empty.
const WarningMalformedStatus = "stored vaccination status could not be read and was treated as empty"

type VaccinationUsecase interface {
	GetStatus(ctx context.Context, childID uuid.UUID) (*dto.VaccinationStatusResponse, error)
	UpdateStatus(ctx context.Context, userID, childID uuid.UUID, req *dto.UpdateVaccinationRequest) (*dto.VaccinationStatusResponse, error)
	GetSchedule(ctx context.Context) *dto.ScheduleResponse
}

type vaccinationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	childRepo    repository.ChildRepository
	auditService service.AuditService
	table        *immunization.Table
	clock        *Clock
}

func NewVaccinationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	childRepo repository.ChildRepository,
	auditService service.AuditService,
	table *immunization.Table,
	clock *Clock,
) VaccinationUsecase {
	return &vaccinationUsecase{
		db:           db,
		log:          log,
		childRepo:    childRepo,
		auditService: auditService,
		table:        table,
		clock:        clock,
	}
}

func (u *vaccinationUsecase) GetStatus(ctx context.Context, childID uuid.UUID) (*dto.VaccinationStatusResponse, error) {
	child, err := u.childRepo.FindByID(ctx, u.db, childID)
	if err != nil {
		u.log.Warnf("Failed to find child: %+v", err)
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	status, warnings := decodeChildStatus(u.log, child)
	resp := converter.VaccinationStatusToResponse(child, u.table, status, u.clock.Today())
	resp.Warnings = warnings
	return resp, nil
}

// UpdateStatus merges the submitted flags into the stored status. Stored
// keys that were not submitted are kept. Concurrent updates of the same
// child are last-write-wins.
func (u *vaccinationUsecase) UpdateStatus(ctx context.Context, userID, childID uuid.UUID, req *dto.UpdateVaccinationRequest) (*dto.VaccinationStatusResponse, error) {
	var unknown []string
	for label := range req.Vaccines {
		if _, ok := u.table.KeyOf(label); !ok {
			unknown = append(unknown, label)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownDose, strings.Join(unknown, ", "))
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	child, err := u.childRepo.FindByID(ctx, tx, childID)
	if err != nil {
		u.log.Warnf("Failed to find child: %+v", err)
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	prior, warnings := decodeChildStatus(u.log, child)
	merged := immunization.Merge(prior, immunization.StatusMap(req.Vaccines))

	encoded, err := merged.Encode()
	if err != nil {
		u.log.Warnf("Failed to encode vaccination status: %+v", err)
		return nil, err
	}

	affected, err := u.childRepo.UpdateVaccines(ctx, tx, childID, string(encoded))
	if err != nil {
		u.log.Warnf("Failed to update vaccination status: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrChildNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionVaccinationUpdate, "child", childID.String(), prior, merged); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	child.Vaccines = string(encoded)
	resp := converter.VaccinationStatusToResponse(child, u.table, merged, u.clock.Today())
	resp.Warnings = warnings
	return resp, nil
}

func (u *vaccinationUsecase) GetSchedule(ctx context.Context) *dto.ScheduleResponse {
	return converter.ScheduleToResponse(u.table)
}

// decodeChildStatus reads the stored status of a child. Unreadable text is
// logged and replaced by an empty map.
func decodeChildStatus(log *logrus.Logger, child *entity.Child) (immunization.StatusMap, []string) {
	status, err := immunization.DecodeStatusMap([]byte(child.Vaccines))
	if err != nil {
		log.WithField("child_id", child.ID).Warnf("Malformed vaccination status: %+v", err)
		return status, []string{WarningMalformedStatus}
	}
	return status, nil
}

// childWarnings tags warnings with the child they belong to, for responses
// that cover many children.
func childWarnings(child *entity.Child, warnings []string) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = fmt.Sprintf("child %s (%s): %s", child.ID, child.Name, w)
	}
	return out
}
