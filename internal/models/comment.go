package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. ParentID is set for threaded
// replies and nil for top-level comments.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"comment_id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	ParentID *uint  `gorm:"index" json:"parent_comment_id,omitempty"`
	UserID   uint   `gorm:"not null" json:"user_id"`
	Content  string `gorm:"not null" json:"content"`
	// LikesCount is a persisted counter, incremented and decremented by the
	// comment like endpoints.
	LikesCount int            `gorm:"default:0" json:"likes_count"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	User       User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
