package usecase

import (
	"context"
	"errors"

	"graphene-trace-portal/config"
	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedUsecase prepares a fresh store: the default roles and one administrator.
// Every step is idempotent and a failed step does not stop the following ones.
type SeedUsecase interface {
	Seed(ctx context.Context) error
}

type seedUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	cfg      config.SeedConfig
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewSeedUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.SeedConfig,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
) SeedUsecase {
	return &seedUsecase{
		db:       db,
		log:      log,
		cfg:      cfg,
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (u *seedUsecase) Seed(ctx context.Context) error {
	var errs []error

	for _, name := range entity.DefaultRoles {
		if err := u.seedRole(ctx, name); err != nil {
			u.log.Warnf("Failed to seed role %s: %+v", name, err)
			errs = append(errs, err)
		}
	}

	if err := u.seedAdmin(ctx); err != nil {
		u.log.Warnf("Failed to seed admin account: %+v", err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (u *seedUsecase) seedRole(ctx context.Context, name string) error {
	exists, err := u.roleRepo.Exists(ctx, u.db, name)
	if err != nil || exists {
		return err
	}
	_, err = u.roleRepo.Create(ctx, u.db, name)
	if isDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (u *seedUsecase) seedAdmin(ctx context.Context) error {
	if u.cfg.AdminEmail == "" {
		return nil
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	admin, err := u.userRepo.FindByEmail(ctx, tx, u.cfg.AdminEmail)
	if err != nil {
		return err
	}
	// an existing account keeps whatever role an admin gave it
	if admin != nil {
		return nil
	}

	role, err := u.roleRepo.FindByName(ctx, tx, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if role == nil {
		return errors.New("admin role missing from catalog")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin = &entity.User{Password: string(hashedPassword)}
	admin.SetEmail(u.cfg.AdminEmail)
	if err := u.userRepo.Create(ctx, tx, admin); err != nil {
		return err
	}
	if err := u.roleRepo.Assign(ctx, tx, admin.ID, role.ID); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}
	u.log.Infof("Seeded admin account %s", admin.Email)
	return nil
}
