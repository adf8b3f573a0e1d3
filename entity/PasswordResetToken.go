package entity

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetToken holds a single-use OTP for the forgot-password flow.
type PasswordResetToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Token     string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsUsed    bool      `gorm:"default:false" json:"isUsed"`
}
