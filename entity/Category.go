package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	CategoryName   string `gorm:"not null" json:"categoryName"`
	CategoryNameAr string `json:"categoryNameAr"`
	Description    string `json:"description"`
	DisplayOrder   int    `json:"displayOrder"`
	IsActive       bool   `gorm:"default:true" json:"isActive"`

	MenuItems []MenuItem `gorm:"foreignKey:CategoryID" json:"-"`
}
