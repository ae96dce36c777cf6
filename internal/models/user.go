package models

import (
	"database/sql"
	"time"
)

// Role is the access level of a user account.
type Role string

// Role constants
const (
	RoleAdmin                Role = "ADMIN"
	RoleMember               Role = "MEMBER"
	RoleVerifiedProfessional Role = "VERIFIED_PROFESSIONAL"
)

// User represents a TradeFlow account
type User struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Email     string         `gorm:"type:varchar(255);not null;uniqueIndex:users_ux1;column:email"`
	Name      sql.NullString `gorm:"type:varchar(120);column:name"`
	Role      Role           `gorm:"type:varchar(32);not null;default:'MEMBER';column:role"`
	CreatedAt time.Time      `gorm:"not null;column:created_at"`

	// Relationships
	Posts      []Post               `gorm:"foreignKey:UserID;references:ID"`
	PostAudits []PostAudit          `gorm:"foreignKey:UserID;references:ID"`
	Profile    *ProfessionalProfile `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// ProfessionalProfile carries the logistics profile of a verified professional.
// One-to-one with User.
type ProfessionalProfile struct {
	ID           int64          `gorm:"primaryKey;autoIncrement;column:id"`
	UserID       int64          `gorm:"not null;uniqueIndex:professional_profiles_ux1;column:user_id"`
	ServiceType  string         `gorm:"type:varchar(64);not null;column:service_type"`
	Routes       []byte         `gorm:"type:jsonb;not null;default:'[]';column:routes"`
	Capacity     sql.NullString `gorm:"type:varchar(120);column:capacity"`
	Verified     bool           `gorm:"not null;default:false;column:verified"`
	Verification []byte         `gorm:"type:jsonb;column:verification"`
	CreatedAt    time.Time      `gorm:"not null;column:created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for ProfessionalProfile
func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}
