package models

import (
	"time"

	"gorm.io/gorm"
)

// Resource is a community-submitted reference entry: a link with a
// description, a free-text category tag, and an expiry time.
type Resource struct {
	ID          uint           `gorm:"primaryKey" json:"resource_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	Link        string         `gorm:"not null" json:"link"`
	Category    string         `gorm:"index" json:"category"`
	EndTime     time.Time      `json:"end_time"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
