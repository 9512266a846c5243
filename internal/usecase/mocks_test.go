package usecase

import (
	"context"
	"io"
	"testing"

	"immunization-tracker/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, sqlMock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return m.Called(ctx, db, user).Error(0)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(ctx, db, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, db, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type mockChildRepository struct {
	mock.Mock
}

func (m *mockChildRepository) Create(ctx context.Context, db *gorm.DB, child *entity.Child) error {
	return m.Called(ctx, db, child).Error(0)
}

func (m *mockChildRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Child, error) {
	args := m.Called(ctx, db, id)
	child, _ := args.Get(0).(*entity.Child)
	return child, args.Error(1)
}

func (m *mockChildRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.ChildFilter) ([]entity.Child, error) {
	args := m.Called(ctx, db, filter)
	children, _ := args.Get(0).([]entity.Child)
	return children, args.Error(1)
}

func (m *mockChildRepository) UpdateVaccines(ctx context.Context, db *gorm.DB, id uuid.UUID, vaccines string) (int64, error) {
	args := m.Called(ctx, db, id, vaccines)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockChildRepository) CountByBirthYear(ctx context.Context, db *gorm.DB) ([]entity.BirthYearCount, error) {
	args := m.Called(ctx, db)
	counts, _ := args.Get(0).([]entity.BirthYearCount)
	return counts, args.Error(1)
}

type mockReactionRepository struct {
	mock.Mock
}

func (m *mockReactionRepository) Create(ctx context.Context, db *gorm.DB, reaction *entity.Reaction) error {
	return m.Called(ctx, db, reaction).Error(0)
}

func (m *mockReactionRepository) FindByChildID(ctx context.Context, db *gorm.DB, childID uuid.UUID) ([]entity.Reaction, error) {
	args := m.Called(ctx, db, childID)
	reactions, _ := args.Get(0).([]entity.Reaction)
	return reactions, args.Error(1)
}

type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	return m.Called(ctx, db, log).Error(0)
}

func (m *mockAuditLogRepository) FindAll(ctx context.Context, db *gorm.DB, action string, limit int) ([]entity.AuditLog, error) {
	args := m.Called(ctx, db, action, limit)
	logs, _ := args.Get(0).([]entity.AuditLog)
	return logs, args.Error(1)
}

func (m *mockAuditLogRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(ctx, db, id)
	log, _ := args.Get(0).(*entity.AuditLog)
	return log, args.Error(1)
}

type mockAuditService struct {
	mock.Mock
}

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return m.Called(ctx, tx, userID, action, entityName, entityID, newValue).Error(0)
}

func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return m.Called(ctx, tx, userID, action, entityName, entityID, oldValue, newValue).Error(0)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}
