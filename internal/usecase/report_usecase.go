package usecase

import (
	"context"
	"strings"

	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// KPI types; any other value reports on all users
const (
	KPIClinicians = "clinicians"
	KPIPatients   = "patients"
	KPITotal      = "total"
)

// ReportUsecase serves read-only admin statistics straight from the store
type ReportUsecase interface {
	Dashboard(ctx context.Context) (*dto.DashboardStatsResponse, error)
	KPIDetails(ctx context.Context, kpiType string) (*dto.KPIDetailsResponse, error)
}

type reportUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	assignmentRepo repository.AssignmentRepository
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	assignmentRepo repository.AssignmentRepository,
) ReportUsecase {
	return &reportUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (u *reportUsecase) Dashboard(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	total, err := u.userRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}

	roles, err := u.roleRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find roles: %+v", err)
		return nil, err
	}

	stats := &dto.DashboardStatsResponse{
		TotalUsers: total,
		Roles:      make([]dto.RoleCount, 0, len(roles)),
	}
	for _, role := range roles {
		count, err := u.roleRepo.CountMembers(ctx, u.db, role.Name)
		if err != nil {
			u.log.Warnf("Failed to count members of role %s: %+v", role.Name, err)
			return nil, err
		}
		stats.Roles = append(stats.Roles, dto.RoleCount{Role: role.Name, Count: count})

		switch role.NormalizedName {
		case entity.NormalizeRoleName(entity.RoleClinician):
			stats.ClinicianCount = count
		case entity.NormalizeRoleName(entity.RolePatient):
			stats.PatientCount = count
		case entity.NormalizeRoleName(entity.RoleAdmin):
			stats.AdminCount = count
		}
	}

	return stats, nil
}

func (u *reportUsecase) KPIDetails(ctx context.Context, kpiType string) (*dto.KPIDetailsResponse, error) {
	kpiType = strings.ToLower(strings.TrimSpace(kpiType))

	var (
		items []dto.KPIItem
		err   error
	)
	switch kpiType {
	case KPIClinicians:
		items, err = u.clinicianItems(ctx)
	case KPIPatients:
		items, err = u.patientItems(ctx)
	default:
		items, err = u.totalItems(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &dto.KPIDetailsResponse{
		Type:  kpiType,
		Count: len(items),
		Items: items,
	}, nil
}

func (u *reportUsecase) clinicianItems(ctx context.Context) ([]dto.KPIItem, error) {
	clinicians, err := u.roleRepo.ListMembers(ctx, u.db, entity.RoleClinician)
	if err != nil {
		u.log.Warnf("Failed to find clinicians: %+v", err)
		return nil, err
	}
	assignments, err := u.assignmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find assignments: %+v", err)
		return nil, err
	}

	counts := make(map[uuid.UUID]int64)
	for _, a := range assignments {
		counts[a.ClinicianUserID]++
	}

	items := make([]dto.KPIItem, len(clinicians))
	for i, c := range clinicians {
		count := counts[c.ID]
		items[i] = dto.KPIItem{
			Email:        c.Email,
			UserName:     c.UserName,
			Role:         entity.RoleClinician,
			PatientCount: &count,
		}
	}
	return items, nil
}

func (u *reportUsecase) patientItems(ctx context.Context) ([]dto.KPIItem, error) {
	patients, err := u.roleRepo.ListMembers(ctx, u.db, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}
	users, err := u.userRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}
	assignments, err := u.assignmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find assignments: %+v", err)
		return nil, err
	}

	emailByID := make(map[uuid.UUID]string, len(users))
	for _, user := range users {
		emailByID[user.ID] = user.Email
	}
	clinicianOf := make(map[uuid.UUID]uuid.UUID)
	for _, a := range assignments {
		if _, ok := clinicianOf[a.PatientUserID]; !ok {
			clinicianOf[a.PatientUserID] = a.ClinicianUserID
		}
	}

	items := make([]dto.KPIItem, len(patients))
	for i, p := range patients {
		item := dto.KPIItem{
			Email:    p.Email,
			UserName: p.UserName,
			Role:     entity.RolePatient,
		}
		// an assignment to a deleted clinician resolves to no clinician
		if clinicianID, ok := clinicianOf[p.ID]; ok {
			if email, ok := emailByID[clinicianID]; ok {
				item.AssignedClinicianEmail = &email
			}
		}
		items[i] = item
	}
	return items, nil
}

func (u *reportUsecase) totalItems(ctx context.Context) ([]dto.KPIItem, error) {
	users, err := u.userRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	items := make([]dto.KPIItem, len(users))
	for i := range users {
		items[i] = dto.KPIItem{
			Email:    users[i].Email,
			UserName: users[i].UserName,
			Role:     users[i].PrimaryRole(),
		}
	}
	return items, nil
}
