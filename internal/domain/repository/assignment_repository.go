package repository

import (
	"context"

	"graphene-trace-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, assignment *entity.Assignment) error
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Assignment, error)
	FindByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Assignment, error)
	CountByClinician(ctx context.Context, db *gorm.DB, clinicianID uuid.UUID) (int64, error)
	DeleteByIDs(ctx context.Context, db *gorm.DB, ids []int64) error
	DeleteByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error)
	// DeleteByUser removes rows where the user is either the clinician or the patient
	DeleteByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
}
