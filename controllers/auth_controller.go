package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := ac.service.Login(req.Username, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Login successful", result)
}

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := ac.service.Register(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Registration successful", result)
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	uid := utils.CurrentUserID(c)
	if err := ac.service.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Password changed successfully", true)
}

// POST /api/auth/forgot-password
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := ac.service.ForgotPassword(req.Email); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "If the email exists, a reset code has been sent", true)
}

// POST /api/auth/reset-password
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		Otp         string `json:"otp" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := ac.service.ResetPassword(req.Email, req.Otp, req.NewPassword); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Password reset successfully", true)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.service.Profile(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", user)
}
