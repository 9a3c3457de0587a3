package repository

import (
	"context"
	"errors"

	"graphene-trace-portal/internal/domain/entity"
	domainRepo "graphene-trace-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userDomainRepository struct{}

func NewUserDomainRepository() domainRepo.UserDomainRepository {
	return &userDomainRepository{}
}

func (r *userDomainRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.UserDomain, error) {
	var userDomain entity.UserDomain
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&userDomain).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &userDomain, nil
}

func (r *userDomainRepository) Create(ctx context.Context, db *gorm.DB, userDomain *entity.UserDomain) error {
	return db.WithContext(ctx).Create(userDomain).Error
}

func (r *userDomainRepository) Update(ctx context.Context, db *gorm.DB, userDomain *entity.UserDomain) error {
	return db.WithContext(ctx).Save(userDomain).Error
}

func (r *userDomainRepository) DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.UserDomain{}).Error
}
