package converter

import (
	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"
)

func SettingsToResponse(s *entity.SystemSettings) *dto.SettingsResponse {
	if s == nil {
		return nil
	}

	return &dto.SettingsResponse{
		DisplayName:        s.DisplayName,
		PhoneNumber:        s.PhoneNumber,
		Timezone:           s.Timezone,
		Language:           s.Language,
		AutoLogout:         s.AutoLogout,
		DataRetention:      s.DataRetention,
		BackupFrequency:    s.BackupFrequency,
		EmailNotifications: s.EmailNotifications,
		SmsAlerts:          s.SmsAlerts,
		WeeklySummary:      s.WeeklySummary,
		MaintenanceMode:    s.MaintenanceMode,
		MaxLoginAttempts:   s.MaxLoginAttempts,
	}
}

// ApplySettingsRequest copies every field of the request onto the row
func ApplySettingsRequest(s *entity.SystemSettings, req *dto.SettingsRequest) {
	s.DisplayName = req.DisplayName
	s.PhoneNumber = req.PhoneNumber
	s.Timezone = req.Timezone
	s.Language = req.Language
	s.AutoLogout = req.AutoLogout
	s.DataRetention = req.DataRetention
	s.BackupFrequency = req.BackupFrequency
	s.EmailNotifications = req.EmailNotifications
	s.SmsAlerts = req.SmsAlerts
	s.WeeklySummary = req.WeeklySummary
	s.MaintenanceMode = req.MaintenanceMode
	s.MaxLoginAttempts = req.MaxLoginAttempts
}
