// Package dialogue 提供对话编排单元测试
package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	healthmodel "github.com/drdeuce/health-agent/internal/model"
	"github.com/drdeuce/health-agent/internal/service/record"
	"github.com/drdeuce/health-agent/internal/service/retriever"
	"github.com/drdeuce/health-agent/internal/service/session"
)

// ========== mockChatModel ==========

type mockChatModel struct {
	reply     string
	err       error
	callCount int
	lastMsgs  []*schema.Message
}

func (m *mockChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.callCount++
	m.lastMsgs = messages
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.reply}, nil
}

func (m *mockChatModel) Stream(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, nil
}

func (m *mockChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

// ========== 测试装配 ==========

type fixture struct {
	svc     *Service
	chat    *mockChatModel
	records *record.Store
	sess    *session.Manager
}

func newFixture(reply string) *fixture {
	chat := &mockChatModel{reply: reply}
	records := record.NewStore()
	sessions := session.NewManager(nil, nil)
	svc := NewService(sessions, records, chat, retriever.NewFetcher(nil, time.Second, 1), DefaultConfig())
	return &fixture{svc: svc, chat: chat, records: records, sess: sessions}
}

func (f *fixture) handle(t *testing.T, userID, query string) *Reply {
	t.Helper()
	reply, err := f.svc.HandleMessage(context.Background(), &Request{UserID: userID, SessionID: "s1", Query: query})
	if err != nil {
		t.Fatalf("HandleMessage(%q) error = %v", query, err)
	}
	return reply
}

func putHealthScore(t *testing.T, store *record.Store, userID string) {
	t.Helper()
	store.Put(userID, &healthmodel.HealthRecord{
		Kind:      healthmodel.KindHealthScore,
		Timestamp: time.Now(),
		Result: &healthmodel.HealthScoreResult{
			TotalScore:      70,
			Status:          "Fair",
			ImprovementTips: []string{"Sleep more."},
		},
	})
}

// ========== 场景测试 ==========

// 普通对话轮走模型，回复不带确认引导
func TestHandleMessage_PlainTurn(t *testing.T) {
	f := newFixture("General health info.")

	reply := f.handle(t, "u1", "tell me about hydration")

	if reply.Response != "General health info." {
		t.Errorf("Response = %q", reply.Response)
	}
	if len(reply.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %v, want empty", reply.ToolsUsed)
	}
	if reply.ChatTitle != "Tell Me About Hydration" {
		t.Errorf("ChatTitle = %q", reply.ChatTitle)
	}
	if f.chat.callCount != 1 {
		t.Errorf("model called %d times, want 1", f.chat.callCount)
	}
}

// 触发类意图：模型回复 + 确认引导后缀，并置待确认态
func TestHandleMessage_TriggerIntentAppendsSuffix(t *testing.T) {
	f := newFixture("Sure, I can help with that.")

	reply := f.handle(t, "u1", "I want to check my vital signs")

	if !strings.HasSuffix(reply.Response, "Would you like to enter your vital signs for monitoring? Type 'yes' to begin.") {
		t.Errorf("Response missing confirmation suffix: %q", reply.Response)
	}
	if !strings.HasPrefix(reply.Response, "Sure, I can help with that.") {
		t.Errorf("Response must keep the model reply: %q", reply.Response)
	}
	if len(reply.ToolsUsed) != 1 || reply.ToolsUsed[0] != "vital_signs_intent" {
		t.Errorf("ToolsUsed = %v", reply.ToolsUsed)
	}

	// 'yes' 解析为确认，返回预设回复且不调模型
	calls := f.chat.callCount
	confirm := f.handle(t, "u1", "yes")
	if confirm.Response != "Please enter your vital signs below:" {
		t.Errorf("confirmation reply = %q", confirm.Response)
	}
	if f.chat.callCount != calls {
		t.Error("confirmation resolution must not call the model")
	}
	if len(confirm.ToolsUsed) != 0 {
		t.Errorf("confirmation turn ToolsUsed = %v, want empty", confirm.ToolsUsed)
	}
}

// 非肯定答复静默清除待确认态，消息按普通轮处理
func TestHandleMessage_NonAffirmativeDropsConfirmation(t *testing.T) {
	f := newFixture("Okay.")

	f.handle(t, "u1", "check my vital signs")
	f.handle(t, "u1", "actually tell me about sleep")

	// 再说 yes 不应再触发预设回复
	reply := f.handle(t, "u1", "yes")
	if reply.Response == "Please enter your vital signs below:" {
		t.Error("stale confirmation must not survive an intervening message")
	}
}

// 咨询确认生成带 user_id 的预约链接
func TestHandleMessage_ConsultationBookingLink(t *testing.T) {
	f := newFixture("Of course.")

	f.handle(t, "u42", "I'd like a health consultation")
	reply := f.handle(t, "u42", "yes")

	if !strings.Contains(reply.Response, "https://drdeucehealth.com/book-consultation?user_id=u42&booking_id=") {
		t.Errorf("booking link missing or malformed: %q", reply.Response)
	}
	if !strings.Contains(reply.Response, "[Click here to book your consultation]") {
		t.Errorf("booking markdown link missing: %q", reply.Response)
	}
}

// 建议类意图绕过模型，直接由健康数据生成回复
func TestHandleMessage_RecommendationsBypassModel(t *testing.T) {
	f := newFixture("should not be used")
	putHealthScore(t, f.records, "u1")

	reply := f.handle(t, "u1", "give me some advice")

	if f.chat.callCount != 0 {
		t.Error("recommendation intent must bypass the model")
	}
	if !strings.HasPrefix(reply.Response, "Based on your health data, here are my personalized recommendations:") {
		t.Errorf("Response = %q", reply.Response)
	}
	if len(reply.ToolsUsed) != 1 || reply.ToolsUsed[0] != "personalized_recommendations" {
		t.Errorf("ToolsUsed = %v", reply.ToolsUsed)
	}
}

// 建议类意图但无数据：模型回复后附加录入引导
func TestHandleMessage_NoHealthData(t *testing.T) {
	f := newFixture("Happy to help with general advice.")

	reply := f.handle(t, "u1", "any tips for me")

	if f.chat.callCount != 1 {
		t.Errorf("model called %d times, want 1", f.chat.callCount)
	}
	if !strings.HasPrefix(reply.Response, "Happy to help with general advice.") {
		t.Errorf("Response must keep the model reply: %q", reply.Response)
	}
	if !strings.Contains(reply.Response, "I don't have any health data for you yet.") {
		t.Errorf("Response missing data-entry guidance: %q", reply.Response)
	}
	if len(reply.ToolsUsed) != 1 || reply.ToolsUsed[0] != "no_health_data" {
		t.Errorf("ToolsUsed = %v", reply.ToolsUsed)
	}
}

// 模型失败的轮次不进入历史
func TestHandleMessage_FailedTurnNotCommitted(t *testing.T) {
	f := newFixture("ok")

	f.handle(t, "u1", "hello")

	f.chat.err = errors.New("provider unavailable")
	if _, err := f.svc.HandleMessage(context.Background(), &Request{UserID: "u1", SessionID: "s1", Query: "second question"}); err == nil {
		t.Fatal("expected error when model fails")
	}
	f.chat.err = nil

	f.handle(t, "u1", "third question")

	history := f.sess.Get(context.Background(), "u1", "s1").History()
	for _, msg := range history {
		if msg.Content == "second question" {
			t.Error("failed turn must not appear in history")
		}
	}
}

// 系统提示词包含最新健康数据摘要
func TestHandleMessage_SystemPromptCarriesHealthData(t *testing.T) {
	f := newFixture("noted")
	putHealthScore(t, f.records, "u1")

	f.handle(t, "u1", "how am I doing")

	if len(f.chat.lastMsgs) == 0 || f.chat.lastMsgs[0].Role != schema.System {
		t.Fatal("first message sent to model must be the system prompt")
	}
	if !strings.Contains(f.chat.lastMsgs[0].Content, "🏆 Health Score:") {
		t.Error("system prompt missing health data digest")
	}
}

// 缺少必填字段直接报错
func TestHandleMessage_Validation(t *testing.T) {
	f := newFixture("ok")

	if _, err := f.svc.HandleMessage(context.Background(), &Request{UserID: "", Query: "hi"}); err == nil {
		t.Error("missing user_id must error")
	}
	if _, err := f.svc.HandleMessage(context.Background(), &Request{UserID: "u1", Query: "   "}); err == nil {
		t.Error("blank query must error")
	}
}

// 标题只在首轮生成，后续轮保持不变
func TestHandleMessage_TitleStable(t *testing.T) {
	f := newFixture("ok")

	first := f.handle(t, "u1", "what foods lower cholesterol")
	second := f.handle(t, "u1", "and what about exercise")

	if first.ChatTitle != "What Foods Lower Cholesterol" {
		t.Errorf("first title = %q", first.ChatTitle)
	}
	if second.ChatTitle != first.ChatTitle {
		t.Errorf("title changed across turns: %q -> %q", first.ChatTitle, second.ChatTitle)
	}
}
