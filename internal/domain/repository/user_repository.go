package repository

import (
	"context"

	"graphene-trace-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the identity store. Finders return (nil, nil) when no row matches
// and load the user's roles.
type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.User, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	// LockByID reads the user row with a row lock held until the transaction ends
	LockByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
}
