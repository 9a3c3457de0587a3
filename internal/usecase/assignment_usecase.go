package usecase

import (
	"context"
	"fmt"
	"strings"

	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/domain/repository"
	"graphene-trace-portal/internal/infrastructure/metrics"
	"graphene-trace-portal/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AssignmentUsecase interface {
	// Assign links the patient to the clinician, replacing any other clinician.
	// Assigning an existing pair succeeds without change.
	Assign(ctx context.Context, req *dto.AssignRequest) (*dto.AssignmentResponse, error)
	Unassign(ctx context.Context, patientID string) error
}

type assignmentUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
	auditService   service.AuditService
}

func NewAssignmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	assignmentRepo repository.AssignmentRepository,
	auditService service.AuditService,
) AssignmentUsecase {
	return &assignmentUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		auditService:   auditService,
	}
}

// parseID treats blank and malformed ids alike
func parseID(id string) (uuid.UUID, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

func (u *assignmentUsecase) Assign(ctx context.Context, req *dto.AssignRequest) (*dto.AssignmentResponse, error) {
	clinicianID, okClinician := parseID(req.ClinicianID)
	patientID, okPatient := parseID(req.PatientID)
	if !okClinician || !okPatient {
		return nil, ErrMissingArgument
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	clinician, err := u.userRepo.FindByID(ctx, tx, clinicianID)
	if err != nil {
		u.log.Warnf("Failed to find clinician: %+v", err)
		return nil, err
	}
	patient, err := u.userRepo.LockByID(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to lock patient: %+v", err)
		return nil, err
	}
	if clinician == nil || patient == nil {
		return nil, ErrUserNotFound
	}
	if !clinician.HasRole(entity.RoleClinician) || !patient.HasRole(entity.RolePatient) {
		return nil, ErrRoleMismatch
	}

	existing, err := u.assignmentRepo.FindByPatient(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find assignments of patient: %+v", err)
		return nil, err
	}

	var current *entity.Assignment
	var stale []int64
	for i := range existing {
		if existing[i].ClinicianUserID == clinicianID {
			current = &existing[i]
			continue
		}
		stale = append(stale, existing[i].ID)
	}

	if err := u.assignmentRepo.DeleteByIDs(ctx, tx, stale); err != nil {
		u.log.Warnf("Failed to remove previous assignments: %+v", err)
		metrics.ObserveAdminOperation("assign", err)
		return nil, err
	}

	if current == nil {
		current = &entity.Assignment{
			ClinicianUserID: clinicianID,
			PatientUserID:   patientID,
		}
		if err := u.assignmentRepo.Create(ctx, tx, current); err != nil {
			u.log.Warnf("Failed to create assignment: %+v", err)
			metrics.ObserveAdminOperation("assign", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		metrics.ObserveAdminOperation("assign", err)
		return nil, err
	}

	u.auditService.Info(ctx, entity.AuditCategoryAssignment, entity.AuditActionAssign,
		fmt.Sprintf("Admin assigned patient %s to clinician %s", patient.Email, clinician.Email),
		entity.JSON{"patient_id": patientID.String(), "clinician_id": clinicianID.String()})
	metrics.ObserveAdminOperation("assign", nil)

	return &dto.AssignmentResponse{
		ClinicianUserID: clinicianID,
		PatientUserID:   patientID,
		ClinicianEmail:  clinician.Email,
		PatientEmail:    patient.Email,
		CreatedAt:       current.CreatedAt,
	}, nil
}

func (u *assignmentUsecase) Unassign(ctx context.Context, patientID string) error {
	id, ok := parseID(patientID)
	if !ok {
		return ErrMissingArgument
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.userRepo.LockByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to lock patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrUserNotFound
	}

	removed, err := u.assignmentRepo.DeleteByPatient(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to remove assignments: %+v", err)
		metrics.ObserveAdminOperation("unassign", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		metrics.ObserveAdminOperation("unassign", err)
		return err
	}

	if removed > 0 {
		u.auditService.Info(ctx, entity.AuditCategoryAssignment, entity.AuditActionUnassign,
			fmt.Sprintf("Admin unassigned patient %s", patient.Email),
			entity.JSON{"patient_id": id.String()})
	}
	metrics.ObserveAdminOperation("unassign", nil)
	return nil
}
