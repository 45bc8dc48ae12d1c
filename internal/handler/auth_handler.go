package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/drdeuce/health-agent/internal/middleware"
	"github.com/drdeuce/health-agent/internal/service"
	"github.com/drdeuce/health-agent/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 注册
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.svc.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		badRequest(c, err)
		return
	}
	created(c, user)
}

// Login 登录
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	if !resp.Success {
		c.JSON(401, Response{Code: -1, Message: resp.Message})
		return
	}
	success(c, resp)
}

// Refresh 刷新令牌
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	accessToken, refreshToken, err := h.svc.Auth.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(401, Response{Code: -1, Message: err.Error()})
		return
	}
	success(c, gin.H{"token": accessToken, "refresh_token": refreshToken})
}

// Logout 登出，撤销当前令牌
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		badRequest(c, errors.New("missing token"))
		return
	}

	if err := h.svc.Auth.RevokeToken(c.Request.Context(), token); err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"message": "Logged out"})
}

// ChangePassword 修改密码
// POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID := getUserID(c)
	if err := h.svc.Auth.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		badRequest(c, err)
		return
	}
	success(c, gin.H{"message": "Password changed"})
}

// Me 当前用户信息
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(401, Response{Code: -1, Message: "not authenticated"})
		return
	}
	success(c, user)
}
