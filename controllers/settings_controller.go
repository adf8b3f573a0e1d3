package controllers

import (
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	service *services.SettingsService
}

func NewSettingsController(service *services.SettingsService) *SettingsController {
	return &SettingsController{service: service}
}

// GET /api/settings
func (sc *SettingsController) List(c *gin.Context) {
	settings, err := sc.service.ListAll()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", settings)
}

// PUT /api/settings/:key
func (sc *SettingsController) Update(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	setting, err := sc.service.Update(c.Param("key"), req.Value)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Setting updated successfully", setting)
}

// GET /api/settings/email
func (sc *SettingsController) GetEmail(c *gin.Context) {
	settings, err := sc.service.GetEmailSettings()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", settings)
}

// POST /api/settings/email
func (sc *SettingsController) UpdateEmail(c *gin.Context) {
	var req services.EmailSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	settings, err := sc.service.UpdateEmailSettings(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Email settings updated successfully", settings)
}
