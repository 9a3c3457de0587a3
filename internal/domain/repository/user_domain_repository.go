package repository

import (
	"context"

	"graphene-trace-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserDomainRepository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.UserDomain, error)
	Create(ctx context.Context, db *gorm.DB, userDomain *entity.UserDomain) error
	Update(ctx context.Context, db *gorm.DB, userDomain *entity.UserDomain) error
	DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
}
