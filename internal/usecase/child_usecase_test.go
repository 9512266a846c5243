package usecase

import (
	"context"
	"testing"
	"time"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedToday = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func TestChildUsecase_Register(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	children := new(mockChildRepository)
	audit := new(mockAuditService)
	uc := NewChildUsecase(db, quietLogger(), children, audit, NewFixedClock(fixedToday))

	operator := uuid.New()
	childID := uuid.New()

	sqlMock.ExpectBegin()
	children.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.Child")).
		Run(func(args mock.Arguments) { args.Get(2).(*entity.Child).ID = childID }).
		Return(nil)
	audit.On("LogCreate", mock.Anything, mock.Anything, &operator, entity.AuditActionChildRegister, "child", childID.String(), mock.Anything).
		Return(nil)
	sqlMock.ExpectCommit()

	resp, err := uc.Register(context.Background(), operator, &dto.RegisterChildRequest{
		Name:          " Amani ",
		DateOfBirth:   "2024-01-01",
		Gender:        "Female",
		Residence:     "Kisumu",
		GuardianPhone: "+254700000001",
	})

	require.NoError(t, err)
	assert.Equal(t, childID, resp.ID)
	assert.Equal(t, "Amani", resp.Name)
	assert.Equal(t, "2024-01-01", resp.DateOfBirth)

	created := children.Calls[0].Arguments.Get(2).(*entity.Child)
	assert.Equal(t, "{}", created.Vaccines)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	audit.AssertExpectations(t)
}

func TestChildUsecase_Register_Rejects(t *testing.T) {
	db, _ := setupMockDB(t)
	children := new(mockChildRepository)
	uc := NewChildUsecase(db, quietLogger(), children, new(mockAuditService), NewFixedClock(fixedToday))

	tests := []struct {
		name string
		req  dto.RegisterChildRequest
		want error
	}{
		{"bad date", dto.RegisterChildRequest{Name: "A", DateOfBirth: "01/01/2024", Gender: "Male"}, ErrInvalidDateFormat},
		{"impossible date", dto.RegisterChildRequest{Name: "A", DateOfBirth: "2024-02-30", Gender: "Male"}, ErrInvalidDateFormat},
		{"future birth", dto.RegisterChildRequest{Name: "A", DateOfBirth: "2024-03-11", Gender: "Male"}, ErrDateOfBirthInFuture},
		{"gender", dto.RegisterChildRequest{Name: "A", DateOfBirth: "2024-01-01", Gender: "M"}, ErrInvalidGender},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), uuid.New(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, children.Calls, "nothing is written on rejected input")
}

func TestChildUsecase_List(t *testing.T) {
	db, _ := setupMockDB(t)
	children := new(mockChildRepository)
	uc := NewChildUsecase(db, quietLogger(), children, new(mockAuditService), NewFixedClock(fixedToday))

	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	children.On("FindAll", mock.Anything, mock.Anything, &entity.ChildFilter{
		Residence: "Kisumu",
		BornFrom:  &from,
	}).Return([]entity.Child{
		{ID: uuid.New(), Name: "Amani", DateOfBirth: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	resp, err := uc.List(context.Background(), &dto.ChildFilterRequest{Residence: " Kisumu ", BornFrom: "2023-01-01"})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "2024-01-01", resp.Children[0].DateOfBirth)
	children.AssertExpectations(t)
}

func TestChildUsecase_List_InvalidFilter(t *testing.T) {
	db, _ := setupMockDB(t)
	uc := NewChildUsecase(db, quietLogger(), new(mockChildRepository), new(mockAuditService), NewFixedClock(fixedToday))

	_, err := uc.List(context.Background(), &dto.ChildFilterRequest{BornTo: "soon"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = uc.List(context.Background(), &dto.ChildFilterRequest{BornFrom: "2024-02-01", BornTo: "2024-01-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestChildUsecase_Get_NotFound(t *testing.T) {
	db, _ := setupMockDB(t)
	children := new(mockChildRepository)
	uc := NewChildUsecase(db, quietLogger(), children, new(mockAuditService), NewFixedClock(fixedToday))

	children.On("FindByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	_, err := uc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestChildUsecase_BirthTrends(t *testing.T) {
	db, _ := setupMockDB(t)
	children := new(mockChildRepository)
	uc := NewChildUsecase(db, quietLogger(), children, new(mockAuditService), NewFixedClock(fixedToday))

	children.On("CountByBirthYear", mock.Anything, mock.Anything).
		Return([]entity.BirthYearCount{{Year: 2023, Total: 2}, {Year: 2024, Total: 5}}, nil)

	resp, err := uc.BirthTrends(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.BirthYearCount{{Year: 2023, Total: 2}, {Year: 2024, Total: 5}}, resp.Years)
}

func TestClock_TodayUsesZone(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	late := time.Date(2024, 3, 9, 22, 30, 0, 0, time.UTC)

	c := NewClock(nairobi)
	c.now = func() time.Time { return late }

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), c.Today())
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), NewFixedClock(late).Today())
}
