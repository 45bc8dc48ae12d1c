// Package intent 提供基于关键词的意图识别
// 规则按优先级顺序匹配，首个命中即返回；顺序不可调整：
// 推荐类查询先于具体领域规则，同时包含两类关键词的查询按推荐处理
package intent

import "strings"

// Intent 意图标签，随响应的 tools_used 返回给客户端
type Intent string

const (
	IntentNone                        Intent = ""
	IntentPersonalizedRecommendations Intent = "personalized_recommendations"
	IntentNoHealthData                Intent = "no_health_data"
	IntentHealthScore                 Intent = "health_score_intent"
	IntentVitalSigns                  Intent = "vital_signs_intent"
	IntentKidneyFunction              Intent = "kidney_function_intent"
	IntentLipidProfile                Intent = "lipid_profile_intent"
	IntentConsultation                Intent = "consultation_intent"
)

// rule 关键词集合到意图的映射
type rule struct {
	keywords []string
	intent   Intent
}

var recommendationKeywords = []string{
	"recommendation", "advice", "suggest", "tips", "what should i do",
}

var domainRules = []rule{
	{[]string{"health score", "analyze my health", "health analysis"}, IntentHealthScore},
	{[]string{"vital signs", "monitor vitals", "check vitals"}, IntentVitalSigns},
	{[]string{"kidney function", "kidney test", "renal function"}, IntentKidneyFunction},
	{[]string{"lipid profile", "cholesterol test", "lipid test"}, IntentLipidProfile},
	{[]string{"health consultation", "consult", "medical advice"}, IntentConsultation},
}

// Classify 识别查询意图
// hasRecords 表示该用户是否已有健康记录，决定推荐类查询映射到
// personalized_recommendations 还是 no_health_data。
// 无法识别时返回 IntentNone，查询按普通对话处理，函数不会失败。
func Classify(query string, hasRecords bool) Intent {
	q := strings.ToLower(query)

	for _, kw := range recommendationKeywords {
		if strings.Contains(q, kw) {
			if hasRecords {
				return IntentPersonalizedRecommendations
			}
			return IntentNoHealthData
		}
	}

	for _, r := range domainRules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.intent
			}
		}
	}

	return IntentNone
}

// IsTrigger 判断意图是否会触发确认流程
func (i Intent) IsTrigger() bool {
	switch i {
	case IntentHealthScore, IntentVitalSigns, IntentKidneyFunction, IntentLipidProfile, IntentConsultation:
		return true
	}
	return false
}
