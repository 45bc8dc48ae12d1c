package service

import (
	"context"
	"log"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/redis/go-redis/v9"

	"github.com/drdeuce/health-agent/internal/config"
	"github.com/drdeuce/health-agent/internal/repository"
	"github.com/drdeuce/health-agent/internal/service/assess"
	"github.com/drdeuce/health-agent/internal/service/auth"
	"github.com/drdeuce/health-agent/internal/service/dialogue"
	"github.com/drdeuce/health-agent/internal/service/knowledge"
	"github.com/drdeuce/health-agent/internal/service/record"
	"github.com/drdeuce/health-agent/internal/service/retriever"
	"github.com/drdeuce/health-agent/internal/service/session"
)

// Services 服务集合
type Services struct {
	// 业务服务
	Dialogue   *dialogue.Service
	Auth       *auth.Service
	Knowledge  *knowledge.Service
	Summarizer *knowledge.Summarizer
	Extractor  *assess.Extractor

	// 共享状态
	Records  *record.Store
	Sessions *session.Manager
	Config   *config.Config

	// Eino 组件（直接使用 eino 类型，无封装）
	ChatModel ecomodel.ChatModel
	Embedder  embedding.Embedder
}

// NewServices 创建所有服务
// AI 组件创建失败时降级为 nil 并记录告警，依赖它们的操作各自返回错误
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	ctx := context.Background()

	sessions := session.NewManager(redisClient, &session.Config{
		MaxHistoryLength: cfg.Chat.MaxHistoryLength,
		MirrorTTL:        time.Duration(cfg.Chat.SessionTTL) * time.Hour,
	})
	records := record.NewStore()

	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		log.Printf("Warning: failed to create chat model: %v", err)
	}

	embedder := newEmbedder(ctx, cfg)

	// 知识库检索走 RRF 路由，目前只有 ES 一个来源
	router := retriever.NewRouter(0)
	if embedder != nil {
		if source := newES8Retriever(ctx, cfg, embedder); source != nil {
			router.Add("knowledge_base", source)
		}
	}
	fetcher := retriever.NewFetcher(router,
		time.Duration(cfg.Chat.RetrieveTimeout)*time.Second, cfg.Chat.RetrieveTopK)

	dialogueSvc := dialogue.NewService(sessions, records, chatModel, fetcher, &dialogue.Config{
		TurnTimeout:    time.Duration(cfg.Chat.TurnTimeout) * time.Second,
		BookingBaseURL: cfg.Chat.BookingBaseURL,
	})

	return &Services{
		Dialogue:   dialogueSvc,
		Auth:       auth.NewService(repo),
		Knowledge:  knowledge.NewService(repo, cfg, embedder),
		Summarizer: knowledge.NewSummarizer(chatModel),
		Extractor:  assess.NewExtractor(chatModel),

		Records:  records,
		Sessions: sessions,
		Config:   cfg,

		ChatModel: chatModel,
		Embedder:  embedder,
	}, nil
}
