package dto

// SettingsRequest is saved as-is; every field is free text
type SettingsRequest struct {
	DisplayName        string `json:"display_name" validate:"omitempty,max=255"`
	PhoneNumber        string `json:"phone_number" validate:"omitempty,max=30"`
	Timezone           string `json:"timezone" validate:"omitempty,max=100"`
	Language           string `json:"language" validate:"omitempty,max=50"`
	AutoLogout         string `json:"auto_logout" validate:"omitempty,max=50"`
	DataRetention      string `json:"data_retention" validate:"omitempty,max=50"`
	BackupFrequency    string `json:"backup_frequency" validate:"omitempty,max=50"`
	EmailNotifications string `json:"email_notifications" validate:"omitempty,max=50"`
	SmsAlerts          string `json:"sms_alerts" validate:"omitempty,max=50"`
	WeeklySummary      string `json:"weekly_summary" validate:"omitempty,max=50"`
	MaintenanceMode    string `json:"maintenance_mode" validate:"omitempty,max=50"`
	MaxLoginAttempts   string `json:"max_login_attempts" validate:"omitempty,max=50"`
}

type SettingsResponse struct {
	DisplayName        string `json:"display_name"`
	PhoneNumber        string `json:"phone_number"`
	Timezone           string `json:"timezone"`
	Language           string `json:"language"`
	AutoLogout         string `json:"auto_logout"`
	DataRetention      string `json:"data_retention"`
	BackupFrequency    string `json:"backup_frequency"`
	EmailNotifications string `json:"email_notifications"`
	SmsAlerts          string `json:"sms_alerts"`
	WeeklySummary      string `json:"weekly_summary"`
	MaintenanceMode    string `json:"maintenance_mode"`
	MaxLoginAttempts   string `json:"max_login_attempts"`
}
