package repository

import (
	"context"

	"graphene-trace-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Role, error)
	Exists(ctx context.Context, db *gorm.DB, name string) (bool, error)
	Create(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error)
	RolesOf(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.Role, error)
	HasRole(ctx context.Context, db *gorm.DB, userID uuid.UUID, name string) (bool, error)
	ListMembers(ctx context.Context, db *gorm.DB, name string) ([]entity.User, error)
	CountMembers(ctx context.Context, db *gorm.DB, name string) (int64, error)
	Assign(ctx context.Context, db *gorm.DB, userID uuid.UUID, roleID int) error
	Replace(ctx context.Context, db *gorm.DB, userID uuid.UUID, roleID int) error
	RemoveAll(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
}
