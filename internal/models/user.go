// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultAvatar is the image assigned to accounts that never uploaded one.
const DefaultAvatar = "avatar_2x.png"

// User represents a registered account. The username is stored
// trimmed and lowercased; the password column only ever holds a
// bcrypt hash.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Image     string    `gorm:"default:avatar_2x.png" json:"image"`
	LoggedIn  bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Businesses []Business `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"businesses,omitempty"`
	Reviews    []Review   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

// PublicProfile is the subset of user fields returned by auth endpoints.
type PublicProfile struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Public returns the user's public fields, never the password hash.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
