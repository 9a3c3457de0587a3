package repository

import (
	"context"

	"graphene-trace-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Find(ctx context.Context, db *gorm.DB) (*entity.SystemSettings, error)
	Create(ctx context.Context, db *gorm.DB, settings *entity.SystemSettings) error
	Save(ctx context.Context, db *gorm.DB, settings *entity.SystemSettings) error
}
