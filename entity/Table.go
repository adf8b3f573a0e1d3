package entity

import (
	"gorm.io/gorm"
)

type TableStatus string

const (
	TableAvailable TableStatus = "Available"
	TableOccupied  TableStatus = "Occupied"
	TableReserved  TableStatus = "Reserved"
)

type Table struct {
	gorm.Model
	TableNumber  int         `gorm:"uniqueIndex;not null" json:"tableNumber"`
	Capacity     int         `json:"capacity"`
	Status       TableStatus `gorm:"not null;default:Available" json:"status"`
	FloorSection string      `json:"floorSection"`
	IsActive     bool        `gorm:"default:true" json:"isActive"`

	// restrict-delete: a table cannot go away while orders reference it
	Orders []Order `gorm:"foreignKey:TableID" json:"-"`
}
