// Package session 提供会话管理单元测试
package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
)

func newTestManager() *Manager {
	return NewManager(nil, nil)
}

// ========== 历史窗口测试 ==========

func TestSession_SystemSlotAlwaysFirst(t *testing.T) {
	mgr := newTestManager()
	sess := mgr.Get(context.Background(), "u1", "s1")

	history := sess.History()
	if len(history) == 0 || history[0].Role != schema.System {
		t.Fatal("new session must start with a system slot")
	}

	for i := 0; i < 20; i++ {
		sess.CommitTurn("persona", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		history = sess.History()
		if history[0].Role != schema.System {
			t.Fatalf("turn %d: history[0].Role = %v, want System", i, history[0].Role)
		}
	}
}

func TestSession_HistoryCapped(t *testing.T) {
	mgr := newTestManager()
	sess := mgr.Get(context.Background(), "u1", "s1")

	for i := 0; i < 15; i++ {
		sess.CommitTurn("persona", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := sess.History()
	if len(history) > DefaultMaxHistory {
		t.Errorf("len(history) = %d, want <= %d", len(history), DefaultMaxHistory)
	}
	if history[0].Role != schema.System {
		t.Error("system slot was evicted by truncation")
	}
	// 截断丢最旧的，尾部必须是最近一轮
	last := history[len(history)-1]
	if last.Role != schema.Assistant || last.Content != "a14" {
		t.Errorf("last message = %v %q, want Assistant a14", last.Role, last.Content)
	}
}

func TestSession_SystemPromptReplaced(t *testing.T) {
	mgr := newTestManager()
	sess := mgr.Get(context.Background(), "u1", "s1")

	sess.CommitTurn("prompt v1", "hi", "hello")
	sess.CommitTurn("prompt v2", "how are you", "fine")

	history := sess.History()
	if history[0].Content != "prompt v2" {
		t.Errorf("system content = %q, want latest prompt", history[0].Content)
	}
	// system 内容是替换而非追加，不随轮数增长
	count := 0
	for _, msg := range history {
		if msg.Role == schema.System {
			count++
		}
	}
	if count != 1 {
		t.Errorf("system message count = %d, want 1", count)
	}
}

func TestSession_PrepareTurnDoesNotMutate(t *testing.T) {
	mgr := newTestManager()
	sess := mgr.Get(context.Background(), "u1", "s1")
	sess.CommitTurn("persona", "q0", "a0")

	before := len(sess.History())
	prospective := sess.PrepareTurn("persona v2", "q1")

	if len(sess.History()) != before {
		t.Error("PrepareTurn mutated session history")
	}
	if prospective[0].Content != "persona v2" {
		t.Errorf("prospective system = %q, want rebuilt prompt", prospective[0].Content)
	}
	last := prospective[len(prospective)-1]
	if last.Role != schema.User || last.Content != "q1" {
		t.Errorf("prospective tail = %v %q, want User q1", last.Role, last.Content)
	}
}

func TestSession_NewChatKeepsOldSession(t *testing.T) {
	mgr := newTestManager()
	ctx := context.Background()

	first := mgr.Get(ctx, "u1", "s1")
	first.CommitTurn("persona", "old question", "old answer")

	// 同一用户开新会话拿到全新历史
	second := mgr.Get(ctx, "u1", "s2")
	if len(second.History()) != 1 {
		t.Errorf("new session history length = %d, want 1 (system slot only)", len(second.History()))
	}
	if len(first.History()) != 3 {
		t.Errorf("old session history length = %d, want 3", len(first.History()))
	}
}

// ========== 确认状态机测试 ==========

func TestConfirmationState_Transitions(t *testing.T) {
	var state ConfirmationState

	if _, pending := state.Pending(); pending {
		t.Fatal("fresh state must be idle")
	}

	state.Trigger(ConfirmVitalSigns)
	kind, pending := state.Pending()
	if !pending || kind != ConfirmVitalSigns {
		t.Fatalf("Pending() = %q %v, want vital_signs pending", kind, pending)
	}

	// 新触发覆盖旧的，不排队
	state.Trigger(ConfirmLipidProfile)
	kind, _ = state.Pending()
	if kind != ConfirmLipidProfile {
		t.Errorf("Pending() = %q, want lipid_profile after overwrite", kind)
	}

	// 肯定答复返回类型并复位
	kind, confirmed := state.Resolve("yes")
	if !confirmed || kind != ConfirmLipidProfile {
		t.Errorf("Resolve(yes) = %q %v", kind, confirmed)
	}
	if _, pending := state.Pending(); pending {
		t.Error("state must be idle after resolve")
	}
}

func TestConfirmationState_NonAffirmativeDropsSilently(t *testing.T) {
	var state ConfirmationState
	state.Trigger(ConfirmVitalSigns)

	_, confirmed := state.Resolve("no thanks")
	if confirmed {
		t.Error("non-affirmative reply must not confirm")
	}
	if _, pending := state.Pending(); pending {
		t.Error("pending confirmation must be dropped, not kept")
	}
}

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"yes", true},
		{"YES", true},
		{"  yes  ", true},
		{"Yes", true},
		{"yes please", false},
		{"no", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAffirmative(tt.text); got != tt.expected {
			t.Errorf("IsAffirmative(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

// ========== 标题测试 ==========

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"short query", "what is a healthy diet", "What Is A Healthy Diet"},
		{"long query keeps ten words", "one two three four five six seven eight nine ten eleven", "One Two Three Four Five Six Seven Eight Nine Ten"},
		{"empty query", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateTitle(tt.query); got != tt.expected {
				t.Errorf("GenerateTitle(%q) = %q, want %q", tt.query, got, tt.expected)
			}
		})
	}
}

func TestSession_EnsureTitleOnlyOnce(t *testing.T) {
	mgr := newTestManager()
	sess := mgr.Get(context.Background(), "u1", "s1")

	first := sess.EnsureTitle("first question here")
	second := sess.EnsureTitle("a different question")

	if first != "First Question Here" {
		t.Errorf("first title = %q", first)
	}
	if second != first {
		t.Errorf("title changed on later turns: %q", second)
	}
}
