package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a structured audit trail entry
type AuditLog struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Level         string     `gorm:"type:varchar(16);not null" json:"level"`
	Category      string     `gorm:"type:varchar(32);not null;index" json:"category"`
	Action        string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	CorrelationID string     `gorm:"type:varchar(64);index" json:"correlation_id,omitempty"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Metadata      JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Audit levels
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit categories
const (
	AuditCategoryAuth       = "auth"
	AuditCategoryUser       = "user"
	AuditCategoryRole       = "role"
	AuditCategoryAssignment = "assignment"
	AuditCategorySettings   = "settings"
)

// Common audit actions
const (
	AuditActionLoginSucceeded   = "auth.login.succeeded"
	AuditActionLoginNotFound    = "auth.login.not_found"
	AuditActionLoginBadPassword = "auth.login.bad_credentials"
	AuditActionLoginDomain      = "auth.login.domain_mismatch"
	AuditActionLoginDenied      = "auth.login.access_denied"
	AuditActionLogout           = "auth.logout"
	AuditActionPasswordChange   = "auth.password.change"
	AuditActionUserCreate       = "user.create"
	AuditActionUserUpdate       = "user.update"
	AuditActionUserDelete       = "user.delete"
	AuditActionRoleSet          = "role.set"
	AuditActionAssign           = "assignment.assign"
	AuditActionUnassign         = "assignment.unassign"
	AuditActionSettingsUpdate   = "settings.update"
)
