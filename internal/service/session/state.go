package session

import "strings"

// ConfirmationKind 待确认的子流程类型
type ConfirmationKind string

const (
	ConfirmHealthScore    ConfirmationKind = "health_score"
	ConfirmVitalSigns     ConfirmationKind = "vital_signs"
	ConfirmKidneyFunction ConfirmationKind = "kidney_function"
	ConfirmLipidProfile   ConfirmationKind = "lipid_profile"
	ConfirmConsultation   ConfirmationKind = "health_consultation"
)

// ConfirmationState 会话的确认状态机
// 每个会话同一时间至多一个待确认项；新触发覆盖旧的，不排队。
// 待确认项没有超时，直到被回答或覆盖为止。
type ConfirmationState struct {
	pending bool
	kind    ConfirmationKind
}

// Trigger 进入等待确认状态（覆盖已有的待确认项）
func (s *ConfirmationState) Trigger(kind ConfirmationKind) {
	s.pending = true
	s.kind = kind
}

// Pending 返回当前待确认项
func (s *ConfirmationState) Pending() (ConfirmationKind, bool) {
	return s.kind, s.pending
}

// Resolve 处理确认回合的用户输入
// 肯定答复时返回待确认类型并复位；非肯定答复静默丢弃待确认项，
// 消息随后按普通对话处理（沿用原有行为，不追问）
func (s *ConfirmationState) Resolve(text string) (ConfirmationKind, bool) {
	if !s.pending {
		return "", false
	}

	kind := s.kind
	s.pending = false
	s.kind = ""

	if IsAffirmative(text) {
		return kind, true
	}
	return "", false
}

// Reset 清除待确认项
func (s *ConfirmationState) Reset() {
	s.pending = false
	s.kind = ""
}

// IsAffirmative 判断输入是否为肯定答复
func IsAffirmative(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "yes")
}
