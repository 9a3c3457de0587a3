package dto

import (
	"time"

	"graphene-trace-portal/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type AuditLogResponse struct {
	ID            int64       `json:"id"`
	Level         string      `json:"level"`
	Category      string      `json:"category"`
	Action        string      `json:"action"`
	Message       string      `json:"message"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	UserID        *uuid.UUID  `json:"user_id,omitempty"`
	Metadata      entity.JSON `json:"metadata,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
