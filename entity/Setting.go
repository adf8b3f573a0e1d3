package entity

import (
	"gorm.io/gorm"
)

// Setting is a key/value row grouped by category (e.g. "Email").
type Setting struct {
	gorm.Model
	Key         string `gorm:"uniqueIndex;not null" json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Category    string `gorm:"index" json:"category"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}
