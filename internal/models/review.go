package models

import (
	"time"
)

// MaxReviewBodyLen bounds the review body column.
const MaxReviewBodyLen = 255

// Review is a user's review of a business. The author must not be the
// business owner.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Body       string    `gorm:"size:255;not null" json:"body"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	BusinessID uint      `gorm:"not null;index" json:"business_id"`
	Business   Business  `gorm:"foreignKey:BusinessID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
