package usecase

import (
	"context"
	"fmt"
	"strings"

	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/domain/repository"
	"graphene-trace-portal/internal/infrastructure/metrics"
	"graphene-trace-portal/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RoleUsecase interface {
	// SetRole leaves the user with exactly the given role
	SetRole(ctx context.Context, userID uuid.UUID, role string) error
	ListRoles(ctx context.Context) ([]string, error)
}

type roleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roles        *roleWriter
	auditService service.AuditService
}

func NewRoleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	userDomainRepo repository.UserDomainRepository,
	auditService service.AuditService,
) RoleUsecase {
	return &roleUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		roles:        newRoleWriter(log, roleRepo, userDomainRepo),
		auditService: auditService,
	}
}

func (u *roleUsecase) SetRole(ctx context.Context, userID uuid.UUID, role string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return validationError("Role is required.")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.roles.apply(ctx, tx, user, role); err != nil {
		metrics.ObserveAdminOperation("set_role", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		metrics.ObserveAdminOperation("set_role", err)
		return err
	}

	u.auditService.Info(ctx, entity.AuditCategoryRole, entity.AuditActionRoleSet,
		fmt.Sprintf("Admin set role %s for user %s", role, user.Email),
		entity.JSON{"user_id": user.ID.String(), "role": role})
	metrics.ObserveAdminOperation("set_role", nil)
	return nil
}

func (u *roleUsecase) ListRoles(ctx context.Context) ([]string, error) {
	roles, err := u.roles.roleRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find roles: %+v", err)
		return nil, err
	}

	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	return names, nil
}

// roleWriter applies a role change inside a caller's transaction
type roleWriter struct {
	log            *logrus.Logger
	roleRepo       repository.RoleRepository
	userDomainRepo repository.UserDomainRepository
}

func newRoleWriter(log *logrus.Logger, roleRepo repository.RoleRepository, userDomainRepo repository.UserDomainRepository) *roleWriter {
	return &roleWriter{log: log, roleRepo: roleRepo, userDomainRepo: userDomainRepo}
}

// apply creates the role when the catalog lacks it, replaces the user's memberships
// with that role and upserts the user's domain record
func (w *roleWriter) apply(ctx context.Context, tx *gorm.DB, user *entity.User, roleName string) error {
	role, err := w.ensureRole(ctx, tx, roleName)
	if err != nil {
		return err
	}

	if err := w.roleRepo.Replace(ctx, tx, user.ID, role.ID); err != nil {
		w.log.Warnf("Failed to replace role memberships: %+v", err)
		return err
	}

	userDomain, err := w.userDomainRepo.FindByUserID(ctx, tx, user.ID)
	if err != nil {
		w.log.Warnf("Failed to find user domain: %+v", err)
		return err
	}
	if userDomain == nil {
		err = w.userDomainRepo.Create(ctx, tx, &entity.UserDomain{
			UserID: user.ID,
			Email:  user.Email,
			Domain: role.Name,
		})
	} else {
		userDomain.Email = user.Email
		userDomain.Domain = role.Name
		err = w.userDomainRepo.Update(ctx, tx, userDomain)
	}
	if err != nil {
		w.log.Warnf("Failed to write user domain: %+v", err)
		return err
	}

	user.Roles = []entity.Role{*role}
	return nil
}

func (w *roleWriter) ensureRole(ctx context.Context, tx *gorm.DB, name string) (*entity.Role, error) {
	role, err := w.roleRepo.FindByName(ctx, tx, name)
	if err != nil {
		w.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role != nil {
		return role, nil
	}

	role, err = w.roleRepo.Create(ctx, tx, name)
	if err != nil {
		w.log.Warnf("Failed to create role: %+v", err)
		return nil, err
	}
	return role, nil
}
