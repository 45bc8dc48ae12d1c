package handler

import (
	"github.com/drdeuce/health-agent/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Dialogue   *DialogueHandler
	Assessment *AssessmentHandler
	Knowledge  *KnowledgeHandler
	Auth       *AuthHandler
	System     *SystemHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Dialogue:   NewDialogueHandler(svc),
		Assessment: NewAssessmentHandler(svc),
		Knowledge:  NewKnowledgeHandler(svc),
		Auth:       NewAuthHandler(svc),
		System:     NewSystemHandler(svc),
	}
}
