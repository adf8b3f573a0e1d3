package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

// Forward-only state machine; Served and Cancelled are terminal.
const (
	OrderPending   OrderStatus = "Pending"
	OrderPreparing OrderStatus = "Preparing"
	OrderReady     OrderStatus = "Ready"
	OrderServed    OrderStatus = "Served"
	OrderCancelled OrderStatus = "Cancelled"
)

// ValidOrderStatus reports whether s names a known status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	gorm.Model
	OrderNumber string          `gorm:"uniqueIndex;not null" json:"orderNumber"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      OrderStatus     `gorm:"not null;default:Pending" json:"status"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	Tax         decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"totalAmount"`
	Notes       string          `json:"notes"`

	CancelledAt        *time.Time `json:"cancelledAt"`
	CancellationReason string     `json:"cancellationReason"`

	TableID uint  `gorm:"not null" json:"tableId"`
	Table   Table `json:"-"` // preload for detail responses

	UserID uint `gorm:"not null" json:"userId"`
	User   User `json:"-"`

	// Order exclusively owns its items
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}

// Active reports whether the order still holds its table.
func (o *Order) Active() bool {
	return o.Status == OrderPending || o.Status == OrderPreparing || o.Status == OrderReady
}
