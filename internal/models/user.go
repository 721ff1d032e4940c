// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Fieldbook application. Accounts are
// created with an email or a phone number (or both); at least one must be set.
type User struct {
	ID uint `gorm:"primaryKey" json:"user_id"`
	// Accounts may have only one of email/phone; the unique indexes are
	// partial so empty values never collide.
	Email        string `gorm:"index:idx_users_email,unique,where:email <> ''" json:"email,omitempty"`
	PhoneNumber  string `gorm:"index:idx_users_phone,unique,where:phone_number <> ''" json:"phone_number,omitempty"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	// RefreshTokenID holds the JTI of the most recently issued refresh token.
	// Only a refresh token carrying this JTI can be exchanged for a new pair;
	// logout clears it, invalidating the session.
	RefreshTokenID string         `json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// FullName returns the display name used in feed and comment payloads.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return ""
	}
	return u.FirstName + " " + u.LastName
}
