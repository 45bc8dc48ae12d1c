package router

import (
	"github.com/gin-gonic/gin"

	"github.com/drdeuce/health-agent/internal/handler"
	"github.com/drdeuce/health-agent/internal/middleware"
	"github.com/drdeuce/health-agent/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.AuthMiddleware(svc))

	// 健康检查
	r.GET("/health", h.System.Health)
	r.GET("/status", h.System.Status)

	// 对话端点保持扁平路径，兼容既有客户端
	r.POST("/query", h.Dialogue.Query)
	r.GET("/chat-history", h.Dialogue.History)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth 认证
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
			auth.POST("/change-password", middleware.RequireAuth(svc), h.Auth.ChangePassword)
			auth.GET("/me", middleware.RequireAuth(svc), h.Auth.Me)
		}

		// Assess 健康评估
		assess := v1.Group("/assess")
		{
			assess.POST("/vital-signs", h.Assessment.VitalSigns)
			assess.POST("/health-score", h.Assessment.HealthScore)
			assess.POST("/kidney-function", h.Assessment.KidneyFunction)
			assess.POST("/lipid-profile", h.Assessment.LipidProfile)
			assess.POST("/liver-function", h.Assessment.LiverFunction)
			assess.POST("/liver-function/extract", h.Assessment.ExtractLiverValues)
			assess.POST("/chronic-risk", h.Assessment.ChronicRisk)
			assess.POST("/mental-health", h.Assessment.MentalHealth)
			assess.GET("/mental-health/countries", h.Assessment.MentalHealthCountries)
			assess.POST("/reproductive", h.Assessment.Reproductive)
			assess.POST("/lifestyle", h.Assessment.Lifestyle)
			assess.POST("/weekly-digest", h.Assessment.WeeklyDigest)
			assess.GET("/progress", h.Assessment.Progress)
		}

		// Document 参考文档
		docs := v1.Group("/documents")
		{
			docs.POST("", h.Knowledge.Ingest)
			docs.GET("", h.Knowledge.List)
			docs.DELETE("/:id", h.Knowledge.Delete)
			docs.POST("/summarize", h.Knowledge.Summarize)
		}
	}

	return r
}
