package models

import (
	"database/sql"
	"time"
)

// PostStatus is the moderation state of a post.
type PostStatus string

// Post status constants. Only PENDING and APPROVED are assigned by the
// service; REJECTED and FLAGGED are reserved for a future moderation flow.
const (
	PostStatusPending  PostStatus = "PENDING"
	PostStatusApproved PostStatus = "APPROVED"
	PostStatusRejected PostStatus = "REJECTED"
	PostStatusFlagged  PostStatus = "FLAGGED"
)

// Post represents a single trade-interest record (offer or request)
// submitted by a user under a pillar.
type Post struct {
	ID            int64           `gorm:"primaryKey;autoIncrement;column:id"`
	PillarID      int64           `gorm:"not null;index;column:pillar_id"`
	UserID        int64           `gorm:"not null;index;column:user_id"`
	Type          string          `gorm:"type:varchar(32);not null;column:type"`
	Commodity     sql.NullString  `gorm:"type:varchar(120);column:commodity"`
	QuantityMin   sql.NullFloat64 `gorm:"column:quantity_min"`
	QuantityMax   sql.NullFloat64 `gorm:"column:quantity_max"`
	Location      sql.NullString  `gorm:"type:varchar(255);column:location"`
	ReadinessDate sql.NullTime    `gorm:"column:readiness_date"`
	FreeText      string          `gorm:"type:text;not null;column:free_text"`
	Status        PostStatus      `gorm:"type:varchar(16);not null;default:'PENDING';column:status"`
	FlagCount     int             `gorm:"not null;default:0;column:flag_count"`
	CreatedAt     time.Time       `gorm:"not null;index;column:created_at"`

	// Relationships
	Pillar *Pillar     `gorm:"foreignKey:PillarID;references:ID"`
	User   *User       `gorm:"foreignKey:UserID;references:ID"`
	Audits []PostAudit `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// StatusForPillar derives the initial status of a post created under the
// given pillar. Posts under approval-gated pillars start PENDING; everything
// else is published immediately.
func StatusForPillar(pillar *Pillar) PostStatus {
	if pillar != nil && pillar.RequireApproval {
		return PostStatusPending
	}
	return PostStatusApproved
}

// PostAudit is an immutable log entry recording a change made to a post.
// Rows are append-only; no code path updates or deletes them.
type PostAudit struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64          `gorm:"not null;index;column:post_id"`
	UserID    sql.NullInt64  `gorm:"column:user_id"`
	Change    []byte         `gorm:"type:jsonb;not null;column:change"`
	Reason    sql.NullString `gorm:"type:varchar(500);column:reason"`
	CreatedAt time.Time      `gorm:"not null;column:created_at"`

	// Relationships
	Post *Post `gorm:"foreignKey:PostID;references:ID"`
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for PostAudit
func (PostAudit) TableName() string {
	return "post_audits"
}
