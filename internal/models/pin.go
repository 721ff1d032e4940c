package models

import (
	"time"

	"gorm.io/gorm"
)

// Pin is a geographic marker placed on the observation map.
type Pin struct {
	ID        uint    `gorm:"primaryKey" json:"pin_id"`
	UserID    uint    `gorm:"not null;index" json:"user_id"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	// Metadata carries free-text notes attached to the marker.
	Metadata  string         `json:"metadata,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
