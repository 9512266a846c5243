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

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	validator           *validator.CustomValidator
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, validator *validator.CustomValidator) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		validator:           validator,
	}
}

func (h *NotificationHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := childID(w, r)
	if !ok {
		return
	}

	sent, err := h.notificationUsecase.SendReminder(r.Context(), userID, id)
	if err != nil {
		writeNotificationError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Reminder sent successfully", sent)
}

func (h *NotificationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := childID(w, r)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	sent, err := h.notificationUsecase.SendMessage(r.Context(), userID, id, &req)
	if err != nil {
		writeNotificationError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Message sent successfully", sent)
}

func writeNotificationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrChildNotFound):
		response.NotFound(w, "Child not found")
	case errors.Is(err, usecase.ErrNoGuardianPhone), errors.Is(err, usecase.ErrNothingToRemind),
		errors.Is(err, usecase.ErrStatusUnreadable):
		response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, usecase.ErrNotificationUnavailable):
		response.ServiceUnavailable(w, err.Error())
	case errors.Is(err, usecase.ErrNotificationFailed):
		response.Error(w, http.StatusBadGateway, "Failed to send text message", err.Error())
	default:
		response.InternalServerError(w, "Failed to send text message")
	}
}
