package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drdeuce/health-agent/internal/service"
)

// SystemHandler 系统处理器
type SystemHandler struct {
	svc *service.Services
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(svc *service.Services) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// Health 健康检查
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status 组件状态，AI 组件降级时在此暴露
// GET /status
func (h *SystemHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":        h.svc.Config.App.Name,
		"version":    h.svc.Config.App.Version,
		"chat_model": h.svc.ChatModel != nil,
		"embedder":   h.svc.Embedder != nil,
	})
}
