package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Global role constants. Management roles carry implicit review authority
// over every request kind; staff see only their own requests plus whatever
// per-kind assignments they hold.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleDirector = "director"
	RoleTeamLead = "team_lead"
	RoleStaff    = "staff"
)

// IsValidRole reports whether the role is one of the portal's known roles
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleDirector, RoleTeamLead, RoleStaff:
		return true
	}
	return false
}

// IsManagementRole reports whether the role carries portal-wide review authority
func IsManagementRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleDirector, RoleTeamLead:
		return true
	}
	return false
}

// User represents the central user entity for logic and database structure
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`   // Omit password from JSON requests/responses
	Role      string         `gorm:"type:varchar(50);not null;default:'staff'" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}
