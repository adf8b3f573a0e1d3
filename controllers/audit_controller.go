package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	service *services.AuditService
}

func NewAuditController(service *services.AuditService) *AuditController {
	return &AuditController{service: service}
}

// GET /api/audit-logs?limit=
func (ac *AuditController) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := ac.service.Recent(limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", logs)
}
