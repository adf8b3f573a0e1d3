package entity

import (
	"gorm.io/gorm"
)

// Staff roles. Stored as plain strings, same value that goes into the JWT claim.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleWaiter  = "Waiter"
	RoleKitchen = "Kitchen"
)

type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	Role         string `gorm:"not null;default:Waiter" json:"role"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`

	// Relations — preload only when needed
	Orders []Order `gorm:"foreignKey:UserID" json:"-"`
}
