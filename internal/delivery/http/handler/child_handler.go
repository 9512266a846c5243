package handler

import (
	"encoding/json"
	"net/http"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/usecase"
	"immunization-tracker/pkg/response"
	"immunization-tracker/pkg/validator"
)

type ChildHandler struct {
	childUsecase usecase.ChildUsecase
	validator    *validator.CustomValidator
}

func NewChildHandler(childUsecase usecase.ChildUsecase, validator *validator.CustomValidator) *ChildHandler {
	return &ChildHandler{
		childUsecase: childUsecase,
		validator:    validator,
	}
}

func (h *ChildHandler) RegisterChild(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.RegisterChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	child, err := h.childUsecase.Register(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrDateOfBirthInFuture, usecase.ErrInvalidGender:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to register child")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Child registered successfully", child)
}

// GetChildren lists children, narrowed by the optional name, gender,
// residence, born_from and born_to query parameters.
func (h *ChildHandler) GetChildren(w http.ResponseWriter, r *http.Request) {
	filter := childFilterFromQuery(r.URL.Query())
	if err := h.validator.Validate(&filter); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	children, err := h.childUsecase.List(r.Context(), &filter)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidDateRange, usecase.ErrInvalidGender:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get children")
		}
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Children retrieved successfully", children.Children,
		&response.Meta{Total: int64(children.Total)})
}

func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	id, ok := childID(w, r)
	if !ok {
		return
	}

	child, err := h.childUsecase.Get(r.Context(), id)
	if err != nil {
		if err == usecase.ErrChildNotFound {
			response.NotFound(w, "Child not found")
			return
		}
		response.InternalServerError(w, "Failed to get child")
		return
	}

	response.Success(w, http.StatusOK, "Child retrieved successfully", child)
}

func (h *ChildHandler) GetBirthTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.childUsecase.BirthTrends(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get birth trends")
		return
	}

	response.Success(w, http.StatusOK, "Birth trends retrieved successfully", trends)
}
