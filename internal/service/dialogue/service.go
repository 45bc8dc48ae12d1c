// Package dialogue 实现对话编排
// 单轮处理流程：意图识别、确认态解析、上下文检索、提示词组装、模型生成、历史提交
package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/google/uuid"

	"github.com/drdeuce/health-agent/internal/service/intent"
	"github.com/drdeuce/health-agent/internal/service/prompt"
	"github.com/drdeuce/health-agent/internal/service/record"
	"github.com/drdeuce/health-agent/internal/service/retriever"
	"github.com/drdeuce/health-agent/internal/service/session"
)

// Request 一次用户消息
type Request struct {
	UserID    string `json:"user_id" binding:"required"`
	SessionID string `json:"session_id"`
	Query     string `json:"query" binding:"required"`
}

// Reply 一次助手回复
type Reply struct {
	Response  string   `json:"response"`
	ChatTitle string   `json:"chat_title"`
	ToolsUsed []string `json:"tools_used"`
}

// Config 对话编排配置
type Config struct {
	TurnTimeout    time.Duration
	BookingBaseURL string
}

// DefaultConfig 默认编排配置
func DefaultConfig() *Config {
	return &Config{
		TurnTimeout:    120 * time.Second,
		BookingBaseURL: "https://drdeucehealth.com/book-consultation",
	}
}

// Service 对话编排服务
type Service struct {
	sessions  *session.Manager
	records   *record.Store
	chatModel ecomodel.ChatModel
	fetcher   *retriever.Fetcher
	cfg       *Config
}

// NewService 创建对话编排服务
// chatModel 为 nil 时普通对话轮返回错误，确认与建议等旁路回复仍可用
func NewService(
	sessions *session.Manager,
	records *record.Store,
	chatModel ecomodel.ChatModel,
	fetcher *retriever.Fetcher,
	cfg *Config,
) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Service{
		sessions:  sessions,
		records:   records,
		chatModel: chatModel,
		fetcher:   fetcher,
		cfg:       cfg,
	}
}

// HandleMessage 处理一条用户消息并返回助手回复
// 同一会话内的轮次串行执行，历史只在模型成功后提交
func (s *Service) HandleMessage(ctx context.Context, req *Request) (*Reply, error) {
	query := strings.TrimSpace(req.Query)
	if req.UserID == "" || query == "" {
		return nil, fmt.Errorf("user_id and query are required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	sess := s.sessions.Get(ctx, req.UserID, sessionID)
	sess.BeginTurn()
	defer sess.EndTurn()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.TurnTimeout)
	defer cancel()

	title := sess.EnsureTitle(query)
	snapshot := s.records.Get(req.UserID)

	// 1. 待确认态优先：肯定答复走预设回复，否定答复静默清除后按普通消息处理
	if _, pending := sess.PendingConfirmation(); pending {
		if kind, confirmed := sess.ResolveConfirmation(query); confirmed {
			reply := s.confirmationReply(kind, req.UserID)
			systemPrompt := prompt.BuildSystemPrompt(snapshot, "")
			sess.CommitTurn(systemPrompt, query, reply)
			s.sessions.Mirror(ctx, sess)
			return &Reply{Response: reply, ChatTitle: title, ToolsUsed: []string{}}, nil
		}
	}

	// 2. 意图识别
	detected := intent.Classify(query, len(snapshot) > 0)

	// 3. 有健康数据的建议类意图不经过模型，直接由健康数据生成回复
	if detected == intent.IntentPersonalizedRecommendations {
		reply := prompt.BuildRecommendationsReply(snapshot)
		systemPrompt := prompt.BuildSystemPrompt(snapshot, "")
		sess.CommitTurn(systemPrompt, query, reply)
		s.sessions.Mirror(ctx, sess)
		return &Reply{Response: reply, ChatTitle: title, ToolsUsed: []string{string(detected)}}, nil
	}

	// 4. 普通对话轮：检索降级容忍，提示词按最新健康数据重建
	if s.chatModel == nil {
		return nil, fmt.Errorf("chat model is not configured")
	}

	retrieved := s.fetcher.Fetch(ctx, query)
	systemPrompt := prompt.BuildSystemPrompt(snapshot, retrieved)
	messages := sess.PrepareTurn(systemPrompt, query)

	resp, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reply: %w", err)
	}
	reply := resp.Content

	// 5. 触发类意图附加确认引导并置待确认态；
	// 无健康数据的建议请求在模型回复后附加录入引导
	toolsUsed := []string{}
	switch {
	case detected.IsTrigger():
		reply += triggerSuffixes[detected]
		sess.TriggerConfirmation(confirmationKinds[detected])
		toolsUsed = append(toolsUsed, string(detected))
	case detected == intent.IntentNoHealthData:
		reply += noHealthDataSuffix
		toolsUsed = append(toolsUsed, string(detected))
	}

	// 6. 模型成功后才提交本轮历史
	sess.CommitTurn(systemPrompt, query, reply)
	s.sessions.Mirror(ctx, sess)

	return &Reply{Response: reply, ChatTitle: title, ToolsUsed: toolsUsed}, nil
}

// confirmationReply 确认成功后的预设回复
func (s *Service) confirmationReply(kind session.ConfirmationKind, userID string) string {
	switch kind {
	case session.ConfirmVitalSigns:
		return "Please enter your vital signs below:"
	case session.ConfirmHealthScore:
		return "Please enter your health data below for analysis:"
	case session.ConfirmKidneyFunction:
		return "Please enter your kidney function test results below:"
	case session.ConfirmLipidProfile:
		return "Please enter your lipid profile test results below:"
	case session.ConfirmConsultation:
		bookingURL := fmt.Sprintf("%s?user_id=%s&booking_id=%s", s.cfg.BookingBaseURL, userID, uuid.NewString())
		return "Thank you for confirming. I've generated a booking link for your health consultation.\n\n" +
			"**[Click here to book your consultation](" + bookingURL + ")**\n\n" +
			"Your health data including age and sex will be used to prepare for your consultation. " +
			"Is there anything specific you'd like to discuss during your appointment?"
	}
	return "I'm not sure what you're confirming. How can I help you?"
}

// noHealthDataSuffix 建议类意图但无任何健康数据时附加在模型回复后的引导
const noHealthDataSuffix = "\n\nI don't have any health data for you yet. " +
	"Would you like to enter your health data for personalized recommendations? You can choose from:\n\n" +
	"- Health Score Analysis\n" +
	"- Vital Signs Monitoring\n" +
	"- Kidney Function Test\n" +
	"- Lipid Profile Test\n\n" +
	"Type the name of the test you'd like to perform."

// triggerSuffixes 触发类意图的确认引导文案，附加在模型回复之后
var triggerSuffixes = map[intent.Intent]string{
	intent.IntentHealthScore:    "\n\nWould you like to analyze your health score? Type 'yes' to begin.",
	intent.IntentVitalSigns:     "\n\nWould you like to enter your vital signs for monitoring? Type 'yes' to begin.",
	intent.IntentKidneyFunction: "\n\nWould you like to analyze your kidney function? Type 'yes' to begin.",
	intent.IntentLipidProfile:   "\n\nWould you like to analyze your lipid profile? Type 'yes' to begin.",
	intent.IntentConsultation:   "\n\nWould you like to start a health consultation? Type 'yes' to begin.",
}

// confirmationKinds 触发类意图对应的待确认类型
var confirmationKinds = map[intent.Intent]session.ConfirmationKind{
	intent.IntentHealthScore:    session.ConfirmHealthScore,
	intent.IntentVitalSigns:     session.ConfirmVitalSigns,
	intent.IntentKidneyFunction: session.ConfirmKidneyFunction,
	intent.IntentLipidProfile:   session.ConfirmLipidProfile,
	intent.IntentConsultation:   session.ConfirmConsultation,
}
