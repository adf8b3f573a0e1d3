package services

import (
	"log/slog"

	"backend/entity"
	"backend/repository"
)

// AuditService records who did what. Writes are best-effort: a failed audit
// insert is logged and never fails the operation it describes.
type AuditService struct {
	uow *repository.UnitOfWork
}

func NewAuditService(uow *repository.UnitOfWork) *AuditService {
	return &AuditService{uow: uow}
}

func (s *AuditService) Record(userID *uint, action, entityName string, entityID *uint, oldValues, newValues string) {
	if s == nil {
		return
	}
	log := entity.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		OldValues: oldValues,
		NewValues: newValues,
	}
	if err := s.uow.AuditLogs.Create(&log); err != nil {
		slog.Warn("audit write failed", "action", action, "entity", entityName, "error", err)
	}
}

// RecordRequest is Record plus the request's client address and agent.
func (s *AuditService) RecordRequest(userID *uint, action, entityName string, entityID *uint, ip, userAgent string) {
	if s == nil {
		return
	}
	log := entity.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.uow.AuditLogs.Create(&log); err != nil {
		slog.Warn("audit write failed", "action", action, "entity", entityName, "error", err)
	}
}

func (s *AuditService) Recent(limit int) ([]entity.AuditLog, error) {
	return s.uow.AuditLogs.ListRecent(limit)
}
