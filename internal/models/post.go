package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a forum entry on the community feed.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"post_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Content string `gorm:"not null" json:"content"`
	// IsUpdated flips to true once the post has been edited.
	IsUpdated bool `gorm:"default:false" json:"is_updated"`
	// IsActive is the soft-delete flag; inactive posts stay in the table but
	// are excluded from default listings.
	IsActive bool        `gorm:"default:true" json:"is_active"`
	User     User        `gorm:"foreignKey:UserID" json:"user"`
	Media    []PostMedia `gorm:"foreignKey:PostID" json:"media"`
	// LikesCount is not persisted; computed at query time, read-only for gorm
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time, read-only for gorm
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->;column:user_liked" json:"user_liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostMedia is an uploaded attachment on a post, referencing a file served
// from /uploads.
type PostMedia struct {
	ID        uint      `gorm:"primaryKey" json:"media_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	MediaType string    `gorm:"not null" json:"media_type"`
	MediaURL  string    `gorm:"not null" json:"media_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
