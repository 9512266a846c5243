package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/usecase"
	"immunization-tracker/pkg/response"
	"immunization-tracker/pkg/validator"
)

type VaccinationHandler struct {
	vaccinationUsecase usecase.VaccinationUsecase
	validator          *validator.CustomValidator
}

func NewVaccinationHandler(vaccinationUsecase usecase.VaccinationUsecase, validator *validator.CustomValidator) *VaccinationHandler {
	return &VaccinationHandler{
		vaccinationUsecase: vaccinationUsecase,
		validator:          validator,
	}
}

func (h *VaccinationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := childID(w, r)
	if !ok {
		return
	}

	status, err := h.vaccinationUsecase.GetStatus(r.Context(), id)
	if err != nil {
		if err == usecase.ErrChildNotFound {
			response.NotFound(w, "Child not found")
			return
		}
		response.InternalServerError(w, "Failed to get vaccination status")
		return
	}

	response.SuccessWithWarnings(w, http.StatusOK, "Vaccination status retrieved successfully", status, status.Warnings)
}

// UpdateStatus merges the submitted flags into the child's record. Doses not
// in the request keep their stored value.
func (h *VaccinationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := childID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateVaccinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	status, err := h.vaccinationUsecase.UpdateStatus(r.Context(), userID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnknownDose):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrChildNotFound):
			response.NotFound(w, "Child not found")
		default:
			response.InternalServerError(w, "Failed to update vaccination status")
		}
		return
	}

	response.SuccessWithWarnings(w, http.StatusOK, "Vaccination status updated successfully", status, status.Warnings)
}

func (h *VaccinationHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Schedule retrieved successfully", h.vaccinationUsecase.GetSchedule(r.Context()))
}
