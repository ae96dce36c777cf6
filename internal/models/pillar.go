package models

import (
	"database/sql"
	"time"
)

// Pillar is a moderated category governing how posts under it are created
// and whether they require approval before publication.
type Pillar struct {
	ID              int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Slug            string         `gorm:"type:varchar(64);not null;uniqueIndex:pillars_ux1;column:slug"`
	Name            string         `gorm:"type:varchar(120);not null;column:name"`
	Description     sql.NullString `gorm:"type:varchar(500);column:description"`
	Template        string         `gorm:"type:text;not null;default:'';column:template"`
	RequireApproval bool           `gorm:"not null;default:false;column:require_approval"`
	CreatedAt       time.Time      `gorm:"not null;column:created_at"`

	// Relationships
	Posts []Post `gorm:"foreignKey:PillarID;references:ID"`
}

// TableName specifies the table name for Pillar
func (Pillar) TableName() string {
	return "pillars"
}
