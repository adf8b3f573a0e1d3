package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	DB *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

func (r *AuditLogRepository) Create(log *entity.AuditLog) error {
	return r.DB.Create(log).Error
}

func (r *AuditLogRepository) ListRecent(limit int) ([]entity.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []entity.AuditLog
	err := r.DB.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
