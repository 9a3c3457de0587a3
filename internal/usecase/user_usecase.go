package usecase

import (
	"context"
	"fmt"
	"strings"

	"graphene-trace-portal/internal/converter"
	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/domain/repository"
	"graphene-trace-portal/internal/infrastructure/metrics"
	"graphene-trace-portal/internal/service"
	"graphene-trace-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserUsecase interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the user management view and consumes the pending banner of sessionID
	List(ctx context.Context, sessionID string) (*dto.UserManagementResponse, error)
}

type userUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	assignmentRepo repository.AssignmentRepository
	userDomainRepo repository.UserDomainRepository
	roles          *roleWriter
	sessionService service.SessionService
	flashService   service.FlashService
	auditService   service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	assignmentRepo repository.AssignmentRepository,
	userDomainRepo repository.UserDomainRepository,
	sessionService service.SessionService,
	flashService service.FlashService,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		userDomainRepo: userDomainRepo,
		roles:          newRoleWriter(log, roleRepo, userDomainRepo),
		sessionService: sessionService,
		flashService:   flashService,
		auditService:   auditService,
	}
}

func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(req.Email)
	role := strings.TrimSpace(req.Role)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, validationError("Email and password are required.")
	}
	if !validator.LooseEmail(email) {
		return nil, validationError("Please enter a valid email address.")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	if len(req.Password) < minPasswordLength {
		return nil, validationError("Password must be at least 6 characters.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Password:    string(hashedPassword),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
	}
	user.SetEmail(email)

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		u.log.Warnf("Failed to create user: %+v", err)
		metrics.ObserveAdminOperation("create_user", err)
		return nil, err
	}

	if role != "" {
		if err := u.roles.apply(ctx, tx, user, role); err != nil {
			metrics.ObserveAdminOperation("create_user", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		metrics.ObserveAdminOperation("create_user", err)
		return nil, err
	}

	u.auditService.Info(ctx, entity.AuditCategoryUser, entity.AuditActionUserCreate,
		fmt.Sprintf("Admin created user %s with role %s", email, role),
		entity.JSON{"user_id": user.ID.String(), "role": role})
	metrics.ObserveAdminOperation("create_user", nil)

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(req.Email)
	if id == uuid.Nil || email == "" {
		return nil, validationError("User ID and email are required.")
	}
	if !validator.LooseEmail(email) {
		return nil, validationError("Please enter a valid email address.")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	owner, err := u.userRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if owner != nil && owner.ID != user.ID {
		return nil, ErrConflict
	}

	user.SetEmail(email)
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		u.log.Warnf("Failed to update user: %+v", err)
		metrics.ObserveAdminOperation("update_user", err)
		return nil, err
	}

	// keep the domain record's email in step with the account
	userDomain, err := u.userDomainRepo.FindByUserID(ctx, tx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find user domain: %+v", err)
		return nil, err
	}
	if userDomain != nil && userDomain.Email != user.Email {
		userDomain.Email = user.Email
		if err := u.userDomainRepo.Update(ctx, tx, userDomain); err != nil {
			u.log.Warnf("Failed to update user domain: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		metrics.ObserveAdminOperation("update_user", err)
		return nil, err
	}

	u.auditService.Info(ctx, entity.AuditCategoryUser, entity.AuditActionUserUpdate,
		fmt.Sprintf("User %s updated successfully", user.Email),
		entity.JSON{"user_id": user.ID.String()})
	metrics.ObserveAdminOperation("update_user", nil)

	return converter.UserToResponse(user), nil
}

// Delete removes the user together with memberships, assignments on either side and
// the domain record, then ends the user's sessions
func (u *userUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.roleRepo.RemoveAll(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to remove role memberships: %+v", err)
		metrics.ObserveAdminOperation("delete_user", err)
		return err
	}
	if err := u.assignmentRepo.DeleteByUser(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to remove assignments: %+v", err)
		metrics.ObserveAdminOperation("delete_user", err)
		return err
	}
	if err := u.userDomainRepo.DeleteByUserID(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to remove user domain: %+v", err)
		metrics.ObserveAdminOperation("delete_user", err)
		return err
	}
	if _, err := u.userRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		metrics.ObserveAdminOperation("delete_user", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		metrics.ObserveAdminOperation("delete_user", err)
		return err
	}

	if err := u.sessionService.RevokeAll(ctx, id); err != nil {
		u.log.Warnf("Failed to revoke sessions of deleted user: %+v", err)
	}

	u.auditService.Info(ctx, entity.AuditCategoryUser, entity.AuditActionUserDelete,
		fmt.Sprintf("User %s deleted successfully", user.Email),
		entity.JSON{"user_id": id.String()})
	metrics.ObserveAdminOperation("delete_user", nil)
	return nil
}

func (u *userUsecase) List(ctx context.Context, sessionID string) (*dto.UserManagementResponse, error) {
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
	patientCounts := make(map[uuid.UUID]int64)
	clinicianOf := make(map[uuid.UUID]uuid.UUID)
	for _, a := range assignments {
		patientCounts[a.ClinicianUserID]++
		if _, ok := clinicianOf[a.PatientUserID]; !ok {
			clinicianOf[a.PatientUserID] = a.ClinicianUserID
		}
	}

	items := make([]dto.UserListItem, len(users))
	for i := range users {
		user := &users[i]
		role := user.PrimaryRole()
		item := dto.UserListItem{
			ID:          user.ID,
			Email:       user.Email,
			UserName:    user.UserName,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			PhoneNumber: user.PhoneNumber,
			Role:        role,
		}
		switch role {
		case entity.RoleClinician:
			item.PatientCount = patientCounts[user.ID]
		case entity.RolePatient:
			if clinicianID, ok := clinicianOf[user.ID]; ok {
				item.AssignedClinicianEmail = emailByID[clinicianID]
			}
		}
		items[i] = item
	}

	clinicians, err := u.roleRepo.ListMembers(ctx, u.db, entity.RoleClinician)
	if err != nil {
		u.log.Warnf("Failed to find clinicians: %+v", err)
		return nil, err
	}
	patients, err := u.roleRepo.ListMembers(ctx, u.db, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	result := &dto.UserManagementResponse{
		Users:      items,
		Clinicians: converter.UsersToPickList(clinicians),
		Patients:   converter.UsersToPickList(patients),
	}

	// a missing banner never fails the listing
	flash, err := u.flashService.Pop(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to pop flash message: %+v", err)
	} else if flash != nil {
		result.Flash = &dto.FlashResponse{Kind: flash.Kind, Message: flash.Message}
	}

	return result, nil
}
