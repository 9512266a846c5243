package usecase

import (
	"context"
	"errors"
	"strings"

	"immunization-tracker/internal/catalog"
	"immunization-tracker/internal/converter"
	"immunization-tracker/internal/delivery/dto"
)

var ErrVaccineNotFound = errors.New("vaccine not found")

const askNotFoundMessage = "Sorry, no vaccine in the catalog matches that question. Try the exact name, like 'BCG', 'Measles' or 'HPV'."

// CatalogUsecase answers questions from the vaccine reference catalog.
type CatalogUsecase interface {
	ListVaccines(ctx context.Context) *dto.VaccineListResponse
	GetVaccine(ctx context.Context, name string) (*dto.VaccineInfoResponse, error)
	Ask(ctx context.Context, req *dto.AskRequest) *dto.AskResponse
}

type catalogUsecase struct {
	catalog *catalog.Catalog
}

func NewCatalogUsecase(c *catalog.Catalog) CatalogUsecase {
	return &catalogUsecase{catalog: c}
}

func (u *catalogUsecase) ListVaccines(ctx context.Context) *dto.VaccineListResponse {
	entries := u.catalog.Entries()
	return &dto.VaccineListResponse{
		Vaccines: converter.VaccineInfosToResponses(entries),
		Total:    len(entries),
	}
}

func (u *catalogUsecase) GetVaccine(ctx context.Context, name string) (*dto.VaccineInfoResponse, error) {
	v, err := u.catalog.Get(name)
	if err != nil {
		return nil, ErrVaccineNotFound
	}
	return converter.VaccineInfoToResponse(v), nil
}

// Ask returns the first catalog entry whose name appears in the question.
// No match is a normal answer, not an error.
func (u *catalogUsecase) Ask(ctx context.Context, req *dto.AskRequest) *dto.AskResponse {
	question := strings.TrimSpace(req.Question)
	v, err := u.catalog.Lookup(question)
	if err != nil {
		return &dto.AskResponse{Question: question, Message: askNotFoundMessage}
	}
	return &dto.AskResponse{
		Question: question,
		Found:    true,
		Vaccine:  converter.VaccineInfoToResponse(v),
	}
}
