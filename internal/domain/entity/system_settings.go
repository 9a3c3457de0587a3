package entity

// SettingsID is the primary key of the only settings row
const SettingsID = 1

// SystemSettings is the singleton row of portal configuration strings
type SystemSettings struct {
	ID int `gorm:"primaryKey" json:"-"`

	DisplayName string `gorm:"type:varchar(255)" json:"display_name"`
	PhoneNumber string `gorm:"type:varchar(30)" json:"phone_number"`
	Timezone    string `gorm:"type:varchar(100)" json:"timezone"`
	Language    string `gorm:"type:varchar(50)" json:"language"`

	AutoLogout      string `gorm:"type:varchar(50)" json:"auto_logout"`
	DataRetention   string `gorm:"type:varchar(50)" json:"data_retention"`
	BackupFrequency string `gorm:"type:varchar(50)" json:"backup_frequency"`

	EmailNotifications string `gorm:"type:varchar(50)" json:"email_notifications"`
	SmsAlerts          string `gorm:"type:varchar(50)" json:"sms_alerts"`
	WeeklySummary      string `gorm:"type:varchar(50)" json:"weekly_summary"`

	MaintenanceMode  string `gorm:"type:varchar(50)" json:"maintenance_mode"`
	MaxLoginAttempts string `gorm:"type:varchar(50)" json:"max_login_attempts"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}

// DefaultSystemSettings is the row written on first access
func DefaultSystemSettings() *SystemSettings {
	return &SystemSettings{
		ID:                 SettingsID,
		Timezone:           "UTC",
		Language:           "English",
		AutoLogout:         "30 Minutes",
		DataRetention:      "30 Days",
		BackupFrequency:    "Weekly",
		EmailNotifications: "Enabled",
		SmsAlerts:          "Off",
		WeeklySummary:      "Enabled",
		MaintenanceMode:    "Off",
		MaxLoginAttempts:   "3 Attempts",
	}
}
