package handler

import (
	"encoding/json"
	"net/http"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/usecase"
	"immunization-tracker/pkg/response"
	"immunization-tracker/pkg/validator"

	"github.com/gorilla/mux"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *CatalogHandler) GetVaccines(w http.ResponseWriter, r *http.Request) {
	vaccines := h.catalogUsecase.ListVaccines(r.Context())
	response.SuccessWithMeta(w, http.StatusOK, "Vaccines retrieved successfully", vaccines.Vaccines,
		&response.Meta{Total: int64(vaccines.Total)})
}

func (h *CatalogHandler) GetVaccine(w http.ResponseWriter, r *http.Request) {
	vaccine, err := h.catalogUsecase.GetVaccine(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		response.NotFound(w, "Vaccine not found")
		return
	}

	response.Success(w, http.StatusOK, "Vaccine retrieved successfully", vaccine)
}

// Ask answers a free-text question with the first catalog entry named in it.
// A question naming no vaccine is still a 200 with found=false.
func (h *CatalogHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req dto.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	response.Success(w, http.StatusOK, "Question answered", h.catalogUsecase.Ask(r.Context(), &req))
}
