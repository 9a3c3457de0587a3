package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the centralized identity table
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"type:varchar(255);not null" json:"email"`
	NormalizedEmail string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	UserName        string    `gorm:"type:varchar(255);not null" json:"user_name"`
	Password        string    `gorm:"type:text;not null" json:"-"`
	FirstName       string    `gorm:"type:varchar(100)" json:"first_name,omitempty"`
	LastName        string    `gorm:"type:varchar(100)" json:"last_name,omitempty"`
	PhoneNumber     string    `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Loaded by the user repository from user_roles
	Roles []Role `gorm:"-" json:"roles,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an id when the caller did not
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetEmail keeps email, user name and the lookup key identical
func (u *User) SetEmail(email string) {
	u.Email = email
	u.UserName = email
	u.NormalizedEmail = NormalizeEmail(email)
}

// RoleNames returns the names of the loaded roles
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the loaded roles contain name (case-insensitive)
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

// PrimaryRole returns the first loaded role name or ""
func (u *User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0].Name
}

// NormalizeEmail is the case-insensitive lookup key for an email
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
