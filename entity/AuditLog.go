package entity

import (
	"gorm.io/gorm"
)

type AuditLog struct {
	gorm.Model
	UserID    *uint  `json:"userId"`
	Action    string `gorm:"not null" json:"action"`
	Entity    string `gorm:"not null" json:"entity"`
	EntityID  *uint  `json:"entityId"`
	OldValues string `json:"oldValues"`
	NewValues string `json:"newValues"`
	IPAddress string `json:"ipAddress"`
	UserAgent string `json:"userAgent"`
}
