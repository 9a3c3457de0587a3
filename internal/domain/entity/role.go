package entity

import (
	"strings"

	"github.com/google/uuid"
)

// Role represents an entry of the open role catalog
type Role struct {
	ID             int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	NormalizedName string `gorm:"type:varchar(50);uniqueIndex;not null" json:"-"`
}

func (Role) TableName() string {
	return "roles"
}

// UserRole is a role membership row
type UserRole struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RoleID int       `gorm:"primaryKey;index" json:"role_id"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// Role names known to the portal. The catalog accepts others.
const (
	RoleAdmin     = "Admin"
	RoleClinician = "Clinician"
	RolePatient   = "Patient"
)

// DefaultRoles are seeded on first run
var DefaultRoles = []string{RoleAdmin, RoleClinician, RolePatient}

// LandingPriority is the order used to pick the landing area of a user with several roles
var LandingPriority = []string{RoleAdmin, RoleClinician, RolePatient}

// NormalizeRoleName is the case-insensitive catalog key
func NormalizeRoleName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// RoleForDomain maps a login domain selector to the role it claims.
// Unknown selectors map to "" which never matches.
func RoleForDomain(domain string) string {
	switch strings.ToLower(strings.TrimSpace(domain)) {
	case "admin":
		return RoleAdmin
	case "clinician":
		return RoleClinician
	case "patient":
		return RolePatient
	default:
		return ""
	}
}
