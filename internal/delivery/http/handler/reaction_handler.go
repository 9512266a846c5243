package handler

import (
	"encoding/json"
	"net/http"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/usecase"
	"immunization-tracker/pkg/response"
	"immunization-tracker/pkg/validator"
)

type ReactionHandler struct {
	reactionUsecase usecase.ReactionUsecase
	validator       *validator.CustomValidator
}

func NewReactionHandler(reactionUsecase usecase.ReactionUsecase, validator *validator.CustomValidator) *ReactionHandler {
	return &ReactionHandler{
		reactionUsecase: reactionUsecase,
		validator:       validator,
	}
}

func (h *ReactionHandler) LogReaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := childID(w, r)
	if !ok {
		return
	}

	var req dto.LogReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reaction, err := h.reactionUsecase.Log(r.Context(), userID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrChildNotFound:
			response.NotFound(w, "Child not found")
		case usecase.ErrInvalidDateFormat, usecase.ErrReactionBeforeBirth:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to log reaction")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Reaction logged successfully", reaction)
}

func (h *ReactionHandler) GetReactions(w http.ResponseWriter, r *http.Request) {
	id, ok := childID(w, r)
	if !ok {
		return
	}

	reactions, err := h.reactionUsecase.List(r.Context(), id)
	if err != nil {
		if err == usecase.ErrChildNotFound {
			response.NotFound(w, "Child not found")
			return
		}
		response.InternalServerError(w, "Failed to get reactions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Reactions retrieved successfully", reactions.Reactions,
		&response.Meta{Total: int64(reactions.Total)})
}
