package repository

import (
	"context"

	"graphene-trace-portal/internal/domain/entity"
	domainRepo "graphene-trace-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type assignmentRepository struct{}

func NewAssignmentRepository() domainRepo.AssignmentRepository {
	return &assignmentRepository{}
}

func (r *assignmentRepository) Create(ctx context.Context, db *gorm.DB, assignment *entity.Assignment) error {
	return db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Assignment, error) {
	var assignments []entity.Assignment
	err := db.WithContext(ctx).Order("id").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Assignment, error) {
	var assignments []entity.Assignment
	err := db.WithContext(ctx).Where("patient_user_id = ?", patientID).Order("id").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) CountByClinician(ctx context.Context, db *gorm.DB, clinicianID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Assignment{}).Where("clinician_user_id = ?", clinicianID).Count(&count).Error
	return count, err
}

func (r *assignmentRepository) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Where("id IN ?", ids).Delete(&entity.Assignment{}).Error
}

func (r *assignmentRepository) DeleteByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("patient_user_id = ?", patientID).Delete(&entity.Assignment{})
	return result.RowsAffected, result.Error
}

func (r *assignmentRepository) DeleteByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	return db.WithContext(ctx).
		Where("clinician_user_id = ? OR patient_user_id = ?", userID, userID).
		Delete(&entity.Assignment{}).Error
}
