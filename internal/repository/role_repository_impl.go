package repository

import (
	"context"
	"errors"
	"strings"

	"graphene-trace-portal/internal/domain/entity"
	domainRepo "graphene-trace-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error) {
	var role entity.Role
	err := db.WithContext(ctx).Where("normalized_name = ?", entity.NormalizeRoleName(name)).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Role, error) {
	var roles []entity.Role
	err := db.WithContext(ctx).Order("id").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) Exists(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Role{}).
		Where("normalized_name = ?", entity.NormalizeRoleName(name)).
		Count(&count).Error
	return count > 0, err
}

func (r *roleRepository) Create(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error) {
	role := &entity.Role{
		Name:           strings.TrimSpace(name),
		NormalizedName: entity.NormalizeRoleName(name),
	}
	if err := db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleRepository) RolesOf(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.Role, error) {
	var roles []entity.Role
	err := db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.id").
		Find(&roles).Error
	return roles, err
}

func (r *roleRepository) HasRole(ctx context.Context, db *gorm.DB, userID uuid.UUID, name string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.normalized_name = ?", userID, entity.NormalizeRoleName(name)).
		Count(&count).Error
	return count > 0, err
}

// ListMembers returns the users holding the role, without their roles loaded
func (r *roleRepository) ListMembers(ctx context.Context, db *gorm.DB, name string) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.normalized_name = ?", entity.NormalizeRoleName(name)).
		Order("users.email").
		Find(&users).Error
	return users, err
}

func (r *roleRepository) CountMembers(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.normalized_name = ?", entity.NormalizeRoleName(name)).
		Count(&count).Error
	return count, err
}

func (r *roleRepository) Assign(ctx context.Context, db *gorm.DB, userID uuid.UUID, roleID int) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.UserRole{UserID: userID, RoleID: roleID}).Error
}

// Replace leaves the user with exactly one membership
func (r *roleRepository) Replace(ctx context.Context, db *gorm.DB, userID uuid.UUID, roleID int) error {
	if err := r.RemoveAll(ctx, db, userID); err != nil {
		return err
	}
	return db.WithContext(ctx).Create(&entity.UserRole{UserID: userID, RoleID: roleID}).Error
}

func (r *roleRepository) RemoveAll(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.UserRole{}).Error
}
