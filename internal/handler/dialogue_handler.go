package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drdeuce/health-agent/internal/service"
	"github.com/drdeuce/health-agent/internal/service/dialogue"
)

// DialogueHandler 对话处理器
type DialogueHandler struct {
	svc *service.Services
}

// NewDialogueHandler 创建对话处理器
func NewDialogueHandler(svc *service.Services) *DialogueHandler {
	return &DialogueHandler{svc: svc}
}

// queryRequest 对话请求，user_id 缺省取认证用户
type queryRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Query     string `json:"query" binding:"required"`
}

// Query 处理一轮对话
// POST /query
func (h *DialogueHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	reply, err := h.svc.Dialogue.HandleMessage(c.Request.Context(), &dialogue.Request{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		Query:     req.Query,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":   reply.Response,
		"chat_title": reply.ChatTitle,
		"tools_used": reply.ToolsUsed,
	})
}

// History 返回会话消息与用户健康数据快照
// GET /chat-history
func (h *DialogueHandler) History(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = getUserID(c)
	}
	sessionID := c.DefaultQuery("session_id", "default")

	sess := h.svc.Sessions.Get(c.Request.Context(), userID, sessionID)

	c.JSON(http.StatusOK, gin.H{
		"messages":    sess.History(),
		"chat_title":  sess.Title(),
		"health_data": h.svc.Records.Get(userID),
	})
}
