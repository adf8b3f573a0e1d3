package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity       int             `gorm:"not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(10,2)" json:"unitPrice"` // snapshot at order time
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	SpecialRequest string          `json:"specialRequest"`

	OrderID uint  `gorm:"not null" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload only when the line needs its name
}
