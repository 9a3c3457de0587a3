package usecase

import (
	"context"
	"errors"
	"strings"

	"graphene-trace-portal/internal/converter"
	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
)

// DefaultAuditViewLimit is the number of recent events the viewer scans
const DefaultAuditViewLimit = 500

var sessionEventKeywords = []string{"login succeeded", "logout", "successfully"}

// IsSessionEvent reports whether an audit message belongs in the session log view
func IsSessionEvent(message string) bool {
	if message == "" {
		return false
	}
	lower := strings.ToLower(message)
	for _, keyword := range sessionEventKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

type AuditLogUsecase interface {
	// GetSessionLogs returns the session events among the most recent audit events, newest first
	GetSessionLogs(ctx context.Context) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
	viewLimit    int
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
	viewLimit int,
) AuditLogUsecase {
	if viewLimit <= 0 {
		viewLimit = DefaultAuditViewLimit
	}
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
		viewLimit:    viewLimit,
	}
}

func (u *auditLogUsecase) GetSessionLogs(ctx context.Context) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindRecent(ctx, u.db, u.viewLimit)
	if err != nil {
		u.log.Warnf("Failed to find recent audit logs: %+v", err)
		return nil, err
	}

	filtered := make([]entity.AuditLog, 0, len(logs))
	for _, l := range logs {
		if IsSessionEvent(l.Message) {
			filtered = append(filtered, l)
		}
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(filtered),
		Total: len(filtered),
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
