package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"
	"immunization-tracker/internal/domain/immunization"
	"immunization-tracker/internal/infrastructure/export"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type captureRenderer struct {
	doc export.Document
	err error
}

func (r *captureRenderer) Render(doc export.Document) ([]byte, error) {
	r.doc = doc
	if r.err != nil {
		return nil, r.err
	}
	return []byte("rendered"), nil
}

func (r *captureRenderer) ContentType() string { return "text/plain" }
func (r *captureRenderer) Extension() string   { return "txt" }

func captureFactory(r *captureRenderer) RendererFactory {
	return func(format string) (export.Renderer, error) {
		if format != "txt" {
			return nil, export.ErrUnsupportedFormat
		}
		return r, nil
	}
}

func TestReportUsecase_ChildrenReport(t *testing.T) {
	db, _ := setupMockDB(t)
	children := new(mockChildRepository)
	r := &captureRenderer{}
	uc := NewReportUsecase(db, quietLogger(), children, immunization.KEPI, NewFixedClock(fixedToday), captureFactory(r))

	barakaID := uuid.MustParse("5b2e7c1d-9a0f-4e8b-b6d4-3f1a2c9e8d70")
	children.On("FindAll", mock.Anything, mock.Anything, &entity.ChildFilter{Residence: "Kisumu"}).Return([]entity.Child{
		{Name: "Amani", DateOfBirth: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Gender: "Female", Residence: "Kisumu",
			Vaccines: `{"OPV - 0 weeks": true, "BCG - 0 weeks": true, "OPV - 6 weeks": false}`},
		{ID: barakaID, Name: "Baraka", DateOfBirth: time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC), Gender: "Male", Residence: "Kisumu", Vaccines: "garbage"},
	}, nil)

	file, err := uc.ChildrenReport(context.Background(), "txt", &dto.ChildFilterRequest{Residence: "Kisumu"})
	require.NoError(t, err)

	assert.Equal(t, "registered_children.txt", file.Filename)
	assert.Equal(t, "text/plain", file.ContentType)
	assert.Equal(t, []byte("rendered"), file.Data)

	assert.Equal(t, "Registered Children Report", r.doc.Title)
	warning := "child 5b2e7c1d-9a0f-4e8b-b6d4-3f1a2c9e8d70 (Baraka): " + WarningMalformedStatus
	assert.Equal(t, []string{
		"Generated: 2024-03-10",
		"Filter: residence=Kisumu",
		"Children: 2",
		"Warning: " + warning,
	}, r.doc.Meta)
	assert.Equal(t, []string{warning}, file.Warnings)
	require.Len(t, r.doc.Rows, 2)
	assert.Equal(t, []string{"Amani", "2024-01-01", "Female", "Kisumu", "BCG - 0 weeks, OPV - 0 weeks"}, r.doc.Rows[0])
	assert.Equal(t, "", r.doc.Rows[1][4])
}

func TestReportUsecase_VaccinationCard(t *testing.T) {
	db, _ := setupMockDB(t)
	children := new(mockChildRepository)
	r := &captureRenderer{}
	uc := NewReportUsecase(db, quietLogger(), children, immunization.KEPI, NewFixedClock(fixedToday), captureFactory(r))

	child := amani(`{"BCG - 0 weeks": true}`)
	child.Name = "Amani Otieno"
	children.On("FindByID", mock.Anything, mock.Anything, child.ID).Return(child, nil)

	file, err := uc.VaccinationCard(context.Background(), child.ID, "txt")
	require.NoError(t, err)

	assert.Equal(t, "vaccination_card_amani_otieno.txt", file.Filename)
	assert.Equal(t, "Vaccination Card: Amani Otieno", r.doc.Title)
	assert.Equal(t, []string{"Date of Birth: 2024-01-01", "Gender: Female", "Generated: 2024-03-10"}, r.doc.Meta)
	require.Len(t, r.doc.Rows, len(immunization.KEPI.Occasions()))
	assert.Equal(t, []string{"BCG", "0 weeks", "2024-01-01", "Given"}, r.doc.Rows[0])
	assert.Equal(t, []string{"OPV", "0 weeks", "2024-01-01", "Overdue"}, r.doc.Rows[1])
	assert.Equal(t, []string{"OPV", "10 weeks", "2024-03-11", "Due soon"}, r.doc.Rows[3])
	assert.Equal(t, "Not yet due", r.doc.Rows[len(r.doc.Rows)-1][3])
	assert.Empty(t, file.Warnings)
}

func TestReportUsecase_VaccinationCard_UnreadableStatus(t *testing.T) {
	db, _ := setupMockDB(t)
	children := new(mockChildRepository)
	r := &captureRenderer{}
	uc := NewReportUsecase(db, quietLogger(), children, immunization.KEPI, NewFixedClock(fixedToday), captureFactory(r))

	child := amani("[true]")
	children.On("FindByID", mock.Anything, mock.Anything, child.ID).Return(child, nil)

	file, err := uc.VaccinationCard(context.Background(), child.ID, "txt")
	require.NoError(t, err)

	warning := "child 8f0c1a52-0d3e-4c55-9a59-1c6d9b7e2a10 (Amani): " + WarningMalformedStatus
	assert.Equal(t, []string{warning}, file.Warnings)
	assert.Contains(t, r.doc.Meta, "Warning: "+warning)
	assert.Equal(t, "Overdue", r.doc.Rows[0][3])
}

func TestReportUsecase_UnsupportedFormat(t *testing.T) {
	db, _ := setupMockDB(t)
	children := new(mockChildRepository)
	uc := NewReportUsecase(db, quietLogger(), children, immunization.KEPI, NewFixedClock(fixedToday), export.NewRenderer)

	_, err := uc.ChildrenReport(context.Background(), "csv", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = uc.VaccinationCard(context.Background(), uuid.New(), "docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Empty(t, children.Calls)
}

func TestReportUsecase_Errors(t *testing.T) {
	t.Run("unknown child", func(t *testing.T) {
		db, _ := setupMockDB(t)
		children := new(mockChildRepository)
		uc := NewReportUsecase(db, quietLogger(), children, immunization.KEPI, NewFixedClock(fixedToday), captureFactory(&captureRenderer{}))

		children.On("FindByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

		_, err := uc.VaccinationCard(context.Background(), uuid.New(), "txt")
		assert.ErrorIs(t, err, ErrChildNotFound)
	})

	t.Run("render failure", func(t *testing.T) {
		db, _ := setupMockDB(t)
		children := new(mockChildRepository)
		boom := errors.New("disk full")
		uc := NewReportUsecase(db, quietLogger(), children, immunization.KEPI, NewFixedClock(fixedToday), captureFactory(&captureRenderer{err: boom}))

		children.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Child{}, nil)

		_, err := uc.ChildrenReport(context.Background(), "txt", nil)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("bad filter", func(t *testing.T) {
		db, _ := setupMockDB(t)
		children := new(mockChildRepository)
		uc := NewReportUsecase(db, quietLogger(), children, immunization.KEPI, NewFixedClock(fixedToday), captureFactory(&captureRenderer{}))

		_, err := uc.ChildrenReport(context.Background(), "txt", &dto.ChildFilterRequest{BornFrom: "2024/01/01"})
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "amani_otieno", slug("Amani  Otieno"))
	assert.Equal(t, "wanjiru_k", slug(" Wanjiru K. "))
	assert.Equal(t, "child", slug("!!!"))
}
