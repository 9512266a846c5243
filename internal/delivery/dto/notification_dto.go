package dto

import "github.com/google/uuid"

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=1600"`
}

type NotificationResponse struct {
	ChildID   uuid.UUID `json:"child_id"`
	To        string    `json:"to"`
	Body      string    `json:"body"`
	MessageID string    `json:"message_id"`
}
