package service

import (
	"context"

	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditEvent is one structured audit record before persistence
type AuditEvent struct {
	Level    string
	Category string
	Action   string
	Message  string
	UserID   *uuid.UUID
	Metadata entity.JSON
}

// AuditService writes audit events to the audit store and mirrors them to the logger.
// The acting user and correlation id are taken from ctx.
type AuditService interface {
	Record(ctx context.Context, event AuditEvent) error
	Info(ctx context.Context, category, action, message string, metadata entity.JSON)
	Warn(ctx context.Context, category, action, message string, metadata entity.JSON)
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, event AuditEvent) error {
	if event.Level == "" {
		event.Level = entity.AuditLevelInfo
	}
	if event.UserID == nil {
		if actorID, _, ok := ActorFromContext(ctx); ok {
			event.UserID = &actorID
		}
	}
	correlationID := CorrelationIDFromContext(ctx)

	entry := s.log.WithFields(logrus.Fields{
		"category":       event.Category,
		"action":         event.Action,
		"correlation_id": correlationID,
	})
	switch event.Level {
	case entity.AuditLevelError:
		entry.Error(event.Message)
	case entity.AuditLevelWarning:
		entry.Warn(event.Message)
	default:
		entry.Info(event.Message)
	}

	auditLog := &entity.AuditLog{
		Level:         event.Level,
		Category:      event.Category,
		Action:        event.Action,
		Message:       event.Message,
		CorrelationID: correlationID,
		UserID:        event.UserID,
		Metadata:      event.Metadata,
	}

	if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

// Info records an informational event; persistence failures are only logged
func (s *auditService) Info(ctx context.Context, category, action, message string, metadata entity.JSON) {
	_ = s.Record(ctx, AuditEvent{
		Level:    entity.AuditLevelInfo,
		Category: category,
		Action:   action,
		Message:  message,
		Metadata: metadata,
	})
}

// Warn records a warning event; persistence failures are only logged
func (s *auditService) Warn(ctx context.Context, category, action, message string, metadata entity.JSON) {
	_ = s.Record(ctx, AuditEvent{
		Level:    entity.AuditLevelWarning,
		Category: category,
		Action:   action,
		Message:  message,
		Metadata: metadata,
	})
}
