package dto

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLogQuery struct {
	Action string `json:"action" validate:"omitempty,max=100"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

type AuditLogResponse struct {
	ID        int64             `json:"id"`
	User      *UserResponse     `json:"user,omitempty"`
	Action    string            `json:"action"`
	Metadata  datatypes.JSONMap `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
