package dto

import (
	"time"

	"github.com/google/uuid"
)

type LogReactionRequest struct {
	Vaccine string `json:"vaccine" validate:"required,max=100"`
	Date    string `json:"date" validate:"required,isodate"`
	Notes   string `json:"notes" validate:"omitempty,max=2000"`
}

type ReactionResponse struct {
	ID        int64     `json:"id"`
	ChildID   uuid.UUID `json:"child_id"`
	Vaccine   string    `json:"vaccine"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ReactionListResponse struct {
	Reactions []ReactionResponse `json:"reactions"`
	Total     int                `json:"total"`
}
