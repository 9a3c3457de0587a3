package entity

import (
	"time"

	"github.com/google/uuid"
)

// Assignment links one clinician to one patient.
// A patient has at most one assignment row at any time.
type Assignment struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicianUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_pair;index" json:"clinician_user_id"`
	PatientUserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_pair;index" json:"patient_user_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Assignment) TableName() string {
	return "clinician_patient_assignments"
}
