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

var ErrReactionBeforeBirth = errors.New("reaction date is before the child's date of birth")

// ReactionUsecase records adverse reactions. Entries are never edited or
// removed.
type ReactionUsecase interface {
	Log(ctx context.Context, userID, childID uuid.UUID, req *dto.LogReactionRequest) (*dto.ReactionResponse, error)
	List(ctx context.Context, childID uuid.UUID) (*dto.ReactionListResponse, error)
}

type reactionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	childRepo    repository.ChildRepository
	reactionRepo repository.ReactionRepository
	auditService service.AuditService
}

func NewReactionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	childRepo repository.ChildRepository,
	reactionRepo repository.ReactionRepository,
	auditService service.AuditService,
) ReactionUsecase {
	return &reactionUsecase{
		db:           db,
		log:          log,
		childRepo:    childRepo,
		reactionRepo: reactionRepo,
		auditService: auditService,
	}
}

func (u *reactionUsecase) Log(ctx context.Context, userID, childID uuid.UUID, req *dto.LogReactionRequest) (*dto.ReactionResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
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
	if date.Before(child.DateOfBirth) {
		return nil, ErrReactionBeforeBirth
	}

	reaction := &entity.Reaction{
		ChildID: childID,
		Vaccine: strings.TrimSpace(req.Vaccine),
		Date:    date,
		Notes:   strings.TrimSpace(req.Notes),
	}
	if err := u.reactionRepo.Create(ctx, tx, reaction); err != nil {
		u.log.Warnf("Failed to create reaction: %+v", err)
		return nil, err
	}

	resp := converter.ReactionToResponse(reaction)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionReactionLog, "child", childID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

// List returns a child's reactions, newest first.
func (u *reactionUsecase) List(ctx context.Context, childID uuid.UUID) (*dto.ReactionListResponse, error) {
	child, err := u.childRepo.FindByID(ctx, u.db, childID)
	if err != nil {
		u.log.Warnf("Failed to find child: %+v", err)
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	reactions, err := u.reactionRepo.FindByChildID(ctx, u.db, childID)
	if err != nil {
		u.log.Warnf("Failed to find reactions: %+v", err)
		return nil, err
	}

	return &dto.ReactionListResponse{
		Reactions: converter.ReactionsToResponses(reactions),
		Total:     len(reactions),
	}, nil
}
