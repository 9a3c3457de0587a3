package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// AssignRequest ids are plain strings; blank or malformed ids are reported as missing
type AssignRequest struct {
	ClinicianID string `json:"clinician_id"`
	PatientID   string `json:"patient_id"`
}

// Response DTOs

type AssignmentResponse struct {
	ClinicianUserID uuid.UUID `json:"clinician_user_id"`
	PatientUserID   uuid.UUID `json:"patient_user_id"`
	ClinicianEmail  string    `json:"clinician_email"`
	PatientEmail    string    `json:"patient_email"`
	CreatedAt       time.Time `json:"created_at"`
}
