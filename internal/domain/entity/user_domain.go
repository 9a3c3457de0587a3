package entity

import "github.com/google/uuid"

// UserDomain is a reporting copy of a user's role, written with every role change.
// Role memberships stay authoritative.
type UserDomain struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email  string    `gorm:"type:varchar(255);not null" json:"email"`
	Domain string    `gorm:"type:varchar(50);not null" json:"domain"`
}

func (UserDomain) TableName() string {
	return "user_domains"
}
