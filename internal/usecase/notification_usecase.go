package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"
	"immunization-tracker/internal/domain/immunization"
	"immunization-tracker/internal/domain/repository"
	"immunization-tracker/internal/infrastructure/sms"
	"immunization-tracker/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNoGuardianPhone         = errors.New("child has no guardian phone number")
	ErrNothingToRemind         = errors.New("no overdue or upcoming doses to remind about")
	ErrStatusUnreadable        = errors.New("stored vaccination status could not be read, correct it before sending a reminder")
	ErrNotificationUnavailable = errors.New("text messaging is not configured")
	ErrNotificationFailed      = errors.New("failed to send text message")
)

// NotificationUsecase texts guardians. A failed send is reported to the
// caller once; nothing is retried or queued.
type NotificationUsecase interface {
	SendReminder(ctx context.Context, userID, childID uuid.UUID) (*dto.NotificationResponse, error)
	SendMessage(ctx context.Context, userID, childID uuid.UUID, req *dto.SendMessageRequest) (*dto.NotificationResponse, error)
}

type notificationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	childRepo    repository.ChildRepository
	auditService service.AuditService
	sender       sms.Sender
	table        *immunization.Table
	clock        *Clock
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	childRepo repository.ChildRepository,
	auditService service.AuditService,
	sender sms.Sender,
	table *immunization.Table,
	clock *Clock,
) NotificationUsecase {
	return &notificationUsecase{
		db:           db,
		log:          log,
		childRepo:    childRepo,
		auditService: auditService,
		sender:       sender,
		table:        table,
		clock:        clock,
	}
}

// SendReminder texts the guardian the doses that are overdue, due today or
// due within the upcoming window and not yet given. No reminder is sent
// while the child's stored status is unreadable.
func (u *notificationUsecase) SendReminder(ctx context.Context, userID, childID uuid.UUID) (*dto.NotificationResponse, error) {
	child, err := u.findRecipient(ctx, childID)
	if err != nil {
		return nil, err
	}

	status, warnings := decodeChildStatus(u.log, child)
	if len(warnings) > 0 {
		return nil, ErrStatusUnreadable
	}
	body, ok := reminderText(child, u.table, status, u.clock.Today())
	if !ok {
		return nil, ErrNothingToRemind
	}

	return u.send(ctx, userID, child, "reminder", body)
}

func (u *notificationUsecase) SendMessage(ctx context.Context, userID, childID uuid.UUID, req *dto.SendMessageRequest) (*dto.NotificationResponse, error) {
	child, err := u.findRecipient(ctx, childID)
	if err != nil {
		return nil, err
	}

	return u.send(ctx, userID, child, "message", strings.TrimSpace(req.Message))
}

func (u *notificationUsecase) findRecipient(ctx context.Context, childID uuid.UUID) (*entity.Child, error) {
	child, err := u.childRepo.FindByID(ctx, u.db, childID)
	if err != nil {
		u.log.Warnf("Failed to find child: %+v", err)
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	if strings.TrimSpace(child.GuardianPhone) == "" {
		return nil, ErrNoGuardianPhone
	}
	return child, nil
}

func (u *notificationUsecase) send(ctx context.Context, userID uuid.UUID, child *entity.Child, kind, body string) (*dto.NotificationResponse, error) {
	messageID, err := u.sender.Send(ctx, child.GuardianPhone, body)
	if err != nil {
		if errors.Is(err, sms.ErrNotConfigured) {
			return nil, ErrNotificationUnavailable
		}
		u.log.WithField("child_id", child.ID).Warnf("Failed to send %s: %+v", kind, err)
		return nil, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	// a sent message stays sent even if the audit write fails
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionNotificationSend, "child", child.ID.String(),
		map[string]interface{}{"kind": kind, "to": child.GuardianPhone, "message_id": messageID}); err != nil {
		u.log.WithField("child_id", child.ID).Warnf("Failed to audit sent %s: %+v", kind, err)
	}

	return &dto.NotificationResponse{
		ChildID:   child.ID,
		To:        child.GuardianPhone,
		Body:      body,
		MessageID: messageID,
	}, nil
}

func reminderText(child *entity.Child, table *immunization.Table, status immunization.StatusMap, today time.Time) (string, bool) {
	var overdue, soon []string
	for _, d := range immunization.DueDates(child.DateOfBirth, table) {
		done := status.Completed(d.Occasion)
		if done {
			continue
		}
		item := fmt.Sprintf("%s (%s) due %s", d.Occasion.Vaccine, d.Occasion.Offset, d.Date.Format(dateLayout))
		switch immunization.Classify(d.Date, today, done) {
		case immunization.BucketOverdue:
			overdue = append(overdue, item)
		case immunization.BucketDueToday, immunization.BucketUpcoming:
			soon = append(soon, item)
		}
	}
	if len(overdue) == 0 && len(soon) == 0 {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Immunization reminder for %s.", child.Name)
	if len(overdue) > 0 {
		fmt.Fprintf(&b, " Overdue: %s.", strings.Join(overdue, "; "))
	}
	if len(soon) > 0 {
		fmt.Fprintf(&b, " Coming up: %s.", strings.Join(soon, "; "))
	}
	b.WriteString(" Please visit the clinic.")
	return b.String(), true
}
