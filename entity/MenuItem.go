package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	CategoryID      uint            `gorm:"not null" json:"categoryId"`
	Name            string          `gorm:"not null" json:"name"`
	NameAr          string          `json:"nameAr"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	ImageURL        string          `json:"imageUrl"`
	IsAvailable     bool            `gorm:"default:true" json:"isAvailable"`
	PreparationTime *int            `json:"preparationTime"` // minutes, optional

	Category   Category    `json:"-"` // preload only for detail responses
	OrderItems []OrderItem `gorm:"foreignKey:MenuItemID" json:"-"`
}
