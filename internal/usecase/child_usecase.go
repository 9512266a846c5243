package usecase

import (
	"context"
	"errors"
	"strings"

	"immunization-tracker/internal/converter"
	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"
	"immunization-tracker/internal/domain/repository"
	"immunization-tracker/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrChildNotFound       = errors.New("child not found")
	ErrInvalidGender       = errors.New("gender must be Male, Female or Other")
	ErrDateOfBirthInFuture = errors.New("date of birth cannot be in the future")
	ErrInvalidDateRange    = errors.New("born_from must not be after born_to")
)

type ChildUsecase interface {
	Register(ctx context.Context, userID uuid.UUID, req *dto.RegisterChildRequest) (*dto.ChildResponse, error)
	List(ctx context.Context, req *dto.ChildFilterRequest) (*dto.ChildListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ChildResponse, error)
	BirthTrends(ctx context.Context) (*dto.BirthTrendResponse, error)
}

type childUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	childRepo    repository.ChildRepository
	auditService service.AuditService
	clock        *Clock
}

func NewChildUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	childRepo repository.ChildRepository,
	auditService service.AuditService,
	clock *Clock,
) ChildUsecase {
	return &childUsecase{
		db:           db,
		log:          log,
		childRepo:    childRepo,
		auditService: auditService,
		clock:        clock,
	}
}

func validGender(g string) bool {
	switch g {
	case entity.GenderMale, entity.GenderFemale, entity.GenderOther:
		return true
	}
	return false
}

// Register stores a new child with an empty vaccination status.
func (u *childUsecase) Register(ctx context.Context, userID uuid.UUID, req *dto.RegisterChildRequest) (*dto.ChildResponse, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	if dob.After(u.clock.Today()) {
		return nil, ErrDateOfBirthInFuture
	}
	if !validGender(req.Gender) {
		return nil, ErrInvalidGender
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	child := &entity.Child{
		Name:          strings.TrimSpace(req.Name),
		DateOfBirth:   dob,
		Gender:        req.Gender,
		Residence:     strings.TrimSpace(req.Residence),
		GuardianPhone: strings.TrimSpace(req.GuardianPhone),
		Vaccines:      "{}",
	}

	if err := u.childRepo.Create(ctx, tx, child); err != nil {
		u.log.Warnf("Failed to create child: %+v", err)
		return nil, err
	}

	resp := converter.ChildToResponse(child)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionChildRegister, "child", child.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *childUsecase) List(ctx context.Context, req *dto.ChildFilterRequest) (*dto.ChildListResponse, error) {
	filter, err := toChildFilter(req)
	if err != nil {
		return nil, err
	}

	children, err := u.childRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find children: %+v", err)
		return nil, err
	}

	return &dto.ChildListResponse{
		Children: converter.ChildrenToResponses(children),
		Total:    len(children),
	}, nil
}

func (u *childUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.ChildResponse, error) {
	child, err := u.childRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find child: %+v", err)
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	return converter.ChildToResponse(child), nil
}

// BirthTrends counts registered children per birth year.
func (u *childUsecase) BirthTrends(ctx context.Context) (*dto.BirthTrendResponse, error) {
	counts, err := u.childRepo.CountByBirthYear(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count children by birth year: %+v", err)
		return nil, err
	}

	return converter.BirthYearCountsToResponse(counts), nil
}

func toChildFilter(req *dto.ChildFilterRequest) (*entity.ChildFilter, error) {
	if req == nil {
		return nil, nil
	}

	filter := &entity.ChildFilter{
		Name:      strings.TrimSpace(req.Name),
		Gender:    req.Gender,
		Residence: strings.TrimSpace(req.Residence),
	}
	if filter.Gender != "" && !validGender(filter.Gender) {
		return nil, ErrInvalidGender
	}
	if req.BornFrom != "" {
		from, err := parseDate(req.BornFrom)
		if err != nil {
			return nil, err
		}
		filter.BornFrom = &from
	}
	if req.BornTo != "" {
		to, err := parseDate(req.BornTo)
		if err != nil {
			return nil, err
		}
		filter.BornTo = &to
	}
	if filter.BornFrom != nil && filter.BornTo != nil && filter.BornFrom.After(*filter.BornTo) {
		return nil, ErrInvalidDateRange
	}

	return filter, nil
}
