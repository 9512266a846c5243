package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"immunization-tracker/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	return m.Called(ctx, db, log).Error(0)
}

func (m *mockAuditLogRepository) FindAll(ctx context.Context, db *gorm.DB, action string, limit int) ([]entity.AuditLog, error) {
	args := m.Called(ctx, db, action, limit)
	return args.Get(0).([]entity.AuditLog), args.Error(1)
}

func (m *mockAuditLogRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(ctx, db, id)
	log, _ := args.Get(0).(*entity.AuditLog)
	return log, args.Error(1)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAuditService_LogUpdate(t *testing.T) {
	repo := new(mockAuditLogRepository)
	svc := NewAuditService(quietLogger(), repo)
	userID := uuid.New()

	var captured *entity.AuditLog
	repo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.AuditLog")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(*entity.AuditLog) }).
		Return(nil)

	err := svc.LogUpdate(context.Background(), nil, &userID, entity.AuditActionVaccinationUpdate, "child", "c-1",
		map[string]bool{"BCG - 0 weeks": false}, map[string]bool{"BCG - 0 weeks": true})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, &userID, captured.UserID)
	assert.Equal(t, entity.AuditActionVaccinationUpdate, captured.Action)
	assert.Equal(t, datatypes.JSONMap{
		"entity":    "child",
		"entity_id": "c-1",
		"old_value": map[string]bool{"BCG - 0 weeks": false},
		"new_value": map[string]bool{"BCG - 0 weeks": true},
	}, captured.Metadata)
	repo.AssertExpectations(t)
}

func TestAuditService_LogCreate_PropagatesError(t *testing.T) {
	repo := new(mockAuditLogRepository)
	svc := NewAuditService(quietLogger(), repo)
	boom := errors.New("insert failed")

	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(boom)

	err := svc.LogCreate(context.Background(), nil, nil, entity.AuditActionChildRegister, "child", "c-1", nil)
	assert.ErrorIs(t, err, boom)
}
