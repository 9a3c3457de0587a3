package repository

import (
	"context"
	"errors"

	"graphene-trace-portal/internal/domain/entity"
	domainRepo "graphene-trace-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type settingsRepository struct{}

func NewSettingsRepository() domainRepo.SettingsRepository {
	return &settingsRepository{}
}

func (r *settingsRepository) Find(ctx context.Context, db *gorm.DB) (*entity.SystemSettings, error) {
	var settings entity.SystemSettings
	err := db.WithContext(ctx).Order("id").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Create(ctx context.Context, db *gorm.DB, settings *entity.SystemSettings) error {
	return db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepository) Save(ctx context.Context, db *gorm.DB, settings *entity.SystemSettings) error {
	return db.WithContext(ctx).Save(settings).Error
}
