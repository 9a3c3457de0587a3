package usecase

import (
	"context"

	"graphene-trace-portal/internal/converter"
	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/domain/repository"
	"graphene-trace-portal/internal/infrastructure/metrics"
	"graphene-trace-portal/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SettingsUsecase interface {
	// Get returns the settings row, writing the defaults on first access
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Save(ctx context.Context, req *dto.SettingsRequest) (*dto.SettingsResponse, error)
}

type settingsUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	settingsRepo repository.SettingsRepository
	auditService service.AuditService
}

func NewSettingsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settingsRepo repository.SettingsRepository,
	auditService service.AuditService,
) SettingsUsecase {
	return &settingsUsecase{
		db:           db,
		log:          log,
		settingsRepo: settingsRepo,
		auditService: auditService,
	}
}

func (u *settingsUsecase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := u.settingsRepo.Find(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find settings: %+v", err)
		return nil, err
	}
	if settings != nil {
		return converter.SettingsToResponse(settings), nil
	}

	settings = entity.DefaultSystemSettings()
	if err := u.settingsRepo.Create(ctx, u.db, settings); err != nil {
		// a concurrent first read may have written the row already
		if !isDuplicateKeyError(err) {
			u.log.Warnf("Failed to create default settings: %+v", err)
			return nil, err
		}
		if settings, err = u.settingsRepo.Find(ctx, u.db); err != nil {
			u.log.Warnf("Failed to find settings: %+v", err)
			return nil, err
		}
	}

	return converter.SettingsToResponse(settings), nil
}

func (u *settingsUsecase) Save(ctx context.Context, req *dto.SettingsRequest) (*dto.SettingsResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	settings, err := u.settingsRepo.Find(ctx, tx)
	if err != nil {
		u.log.Warnf("Failed to find settings: %+v", err)
		return nil, err
	}
	if settings == nil {
		settings = &entity.SystemSettings{ID: entity.SettingsID}
	}
	converter.ApplySettingsRequest(settings, req)

	if err := u.settingsRepo.Save(ctx, tx, settings); err != nil {
		u.log.Warnf("Failed to save settings: %+v", err)
		metrics.ObserveAdminOperation("save_settings", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		metrics.ObserveAdminOperation("save_settings", err)
		return nil, err
	}

	u.auditService.Info(ctx, entity.AuditCategorySettings, entity.AuditActionSettingsUpdate,
		"Admin updated system settings", nil)
	metrics.ObserveAdminOperation("save_settings", nil)

	return converter.SettingsToResponse(settings), nil
}
