// Package intent 提供意图识别单元测试
package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		hasRecords bool
		expected   Intent
	}{
		{
			name:       "recommendation with records",
			query:      "Can you give me a recommendation?",
			hasRecords: true,
			expected:   IntentPersonalizedRecommendations,
		},
		{
			name:       "recommendation without records",
			query:      "what should I do",
			hasRecords: false,
			expected:   IntentNoHealthData,
		},
		{
			name:     "health score",
			query:    "please analyze my health",
			expected: IntentHealthScore,
		},
		{
			name:     "vital signs",
			query:    "check vitals",
			expected: IntentVitalSigns,
		},
		{
			name:     "kidney",
			query:    "I want a kidney test",
			expected: IntentKidneyFunction,
		},
		{
			name:     "lipid",
			query:    "run a cholesterol test",
			expected: IntentLipidProfile,
		},
		{
			name:     "consultation",
			query:    "I need medical advice about my results",
			expected: IntentConsultation,
		},
		{
			name:     "plain chat",
			query:    "hello there",
			expected: IntentNone,
		},
		{
			name:     "case insensitive",
			query:    "CHECK VITALS please",
			expected: IntentVitalSigns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.query, tt.hasRecords)
			if result != tt.expected {
				t.Errorf("Classify(%q) = %q, want %q", tt.query, result, tt.expected)
			}
		})
	}
}

// 推荐规则先于领域规则：同时包含两类关键词的查询按推荐处理
func TestClassify_RecommendationTakesPriority(t *testing.T) {
	query := "any tips to improve my lipid profile?"

	if got := Classify(query, true); got != IntentPersonalizedRecommendations {
		t.Errorf("Classify() = %q, want %q", got, IntentPersonalizedRecommendations)
	}
	if got := Classify(query, false); got != IntentNoHealthData {
		t.Errorf("Classify() = %q, want %q", got, IntentNoHealthData)
	}
}

func TestIntent_IsTrigger(t *testing.T) {
	triggers := []Intent{IntentHealthScore, IntentVitalSigns, IntentKidneyFunction, IntentLipidProfile, IntentConsultation}
	for _, in := range triggers {
		if !in.IsTrigger() {
			t.Errorf("%q should be a trigger intent", in)
		}
	}

	nonTriggers := []Intent{IntentNone, IntentPersonalizedRecommendations, IntentNoHealthData}
	for _, in := range nonTriggers {
		if in.IsTrigger() {
			t.Errorf("%q should not be a trigger intent", in)
		}
	}
}
