package models

import (
	"time"
)

// Business represents a listed business. The name is stored trimmed and
// lowercased so duplicate checks are case-insensitive.
type Business struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Location    string    `gorm:"not null" json:"location"`
	Category    string    `gorm:"not null;index" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Reviews []Review `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}
