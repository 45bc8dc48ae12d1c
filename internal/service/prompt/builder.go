// Package prompt 负责组装每轮对话的系统提示词
// 系统提示词 = 人设 + 检索上下文 + 用户健康数据摘要，每轮基于最新记录重建
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drdeuce/health-agent/internal/model"
)

// Persona 助手人设，始终作为系统提示词的开头
const Persona = "You are Dr. Deuce, a certified and authorized medical assistant. " +
	"You assist users by analyzing their health data, monitoring vitals, and providing health consultations. " +
	"When giving recommendations or health advice, ALWAYS use the user's actual health data if available. " +
	"Personalize your responses based on their specific health metrics rather than giving generic advice."

// dataUsageInstruction 摘要末尾的强调指令
const dataUsageInstruction = "\nIMPORTANT: Always use the above health data when providing recommendations " +
	"or answering health-related questions. Personalize your responses based on this data."

// BuildSystemPrompt 组装完整系统提示词
// records 为该用户各类型的最新记录快照，retrieved 为知识库检索片段（可为空）
// 纯函数，相同输入产生相同输出
func BuildSystemPrompt(records map[model.RecordKind]*model.HealthRecord, retrieved string) string {
	var sb strings.Builder
	sb.WriteString(Persona)

	if retrieved != "" {
		sb.WriteString("\n\nRelevant information: ")
		sb.WriteString(retrieved)
	}

	if digest := BuildHealthDigest(records); digest != "" {
		sb.WriteString("\n\nUser's health data for reference:")
		sb.WriteString(digest)
	}

	return sb.String()
}

// BuildHealthDigest 生成健康数据摘要
// 固定顺序：生殖健康、生命体征、健康评分、肾功能、血脂、肝功能、慢病风险、心理健康、进度跟踪
// 无任何记录时返回空串
func BuildHealthDigest(records map[model.RecordKind]*model.HealthRecord) string {
	if len(records) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\nUser's Health Data Summary:\n")

	if rec := latestReproductive(records); rec != nil {
		writeReproductive(&sb, rec)
	}
	if rec := records[model.KindVitalSigns]; rec != nil {
		writeVitalSigns(&sb, rec)
	}
	if rec := records[model.KindHealthScore]; rec != nil {
		writeHealthScore(&sb, rec)
	}
	if rec := records[model.KindKidneyFunction]; rec != nil {
		writeKidneyFunction(&sb, rec)
	}
	if rec := records[model.KindLipidProfile]; rec != nil {
		writeLipidProfile(&sb, rec)
	}
	if rec := records[model.KindLiverFunction]; rec != nil {
		writeLiverFunction(&sb, rec)
	}
	if rec := records[model.KindChronicRisk]; rec != nil {
		writeChronicRisk(&sb, rec)
	}
	if rec := records[model.KindMentalHealth]; rec != nil {
		writeMentalHealth(&sb, rec)
	}
	if rec := records[model.KindProgress]; rec != nil {
		writeProgress(&sb, rec)
	}

	sb.WriteString(dataUsageInstruction)
	return sb.String()
}

// latestReproductive 三种生殖健康模式中取时间最新的一条
func latestReproductive(records map[model.RecordKind]*model.HealthRecord) *model.HealthRecord {
	var latest *model.HealthRecord
	for _, kind := range []model.RecordKind{
		model.KindReproductiveCycle,
		model.KindReproductivePregnancy,
		model.KindReproductivePostpartum,
	} {
		rec := records[kind]
		if rec == nil {
			continue
		}
		if latest == nil || rec.Timestamp.After(latest.Timestamp) {
			latest = rec
		}
	}
	return latest
}

func writeReproductive(sb *strings.Builder, rec *model.HealthRecord) {
	result, ok := rec.Result.(*model.ReproductiveResult)
	if !ok {
		return
	}
	sb.WriteString("\n🌸 Reproductive Health Summary:\n")
	fmt.Fprintf(sb, "Mode: %s\n", result.Mode)

	switch result.Mode {
	case "pregnancy":
		fmt.Fprintf(sb, "- Gestational Age: %d weeks\n", result.GestationalWeeks)
		fmt.Fprintf(sb, "- Expected Delivery: %s\n", result.ExpectedDelivery)
		writeDotList(sb, "Diagnosis:", result.Diagnosis)
		writeDotList(sb, "Recommendations:", result.Recommendations)
	case "postpartum":
		fmt.Fprintf(sb, "- Days Since Delivery: %d\n", result.DaysSinceDelivery)
		fmt.Fprintf(sb, "- Ovulation Info: %s\n", result.OvulationInfo)
		writeDotList(sb, "Flags:", result.Flags)
		writeDotList(sb, "Recommendations:", result.Recommendations)
	default:
		fmt.Fprintf(sb, "- Next Period: %s\n", result.NextPeriodStart)
		fmt.Fprintf(sb, "- Ovulation Window: %s\n", result.OvulationWindow)
		writeDotList(sb, "Recommendations:", result.Recommendations)
	}
}

func writeVitalSigns(sb *strings.Builder, rec *model.HealthRecord) {
	result, ok := rec.Result.(*model.VitalSignsResult)
	if !ok {
		return
	}
	sb.WriteString("\n📊 Vital Signs:\n")
	writeTestDate(sb, rec)
	for _, key := range sortedKeys(result.Readings) {
		fmt.Fprintf(sb, "- %s: %g\n", key, result.Readings[key])
	}
	if len(result.Alerts) > 0 {
		fmt.Fprintf(sb, "Alerts: %s\n", strings.Join(result.Alerts, "; "))
	}
}

func writeHealthScore(sb *strings.Builder, rec *model.HealthRecord) {
	result, ok := rec.Result.(*model.HealthScoreResult)
	if !ok {
		return
	}
	sb.WriteString("\n🏆 Health Score:\n")
	writeTestDate(sb, rec)
	fmt.Fprintf(sb, "Total Score: %d\n", result.TotalScore)
	fmt.Fprintf(sb, "Health Status: %s\n", result.Status)
	if len(result.NeedImprovement) > 0 {
		fmt.Fprintf(sb, "Vitals Needing Improvement: %s\n", strings.Join(result.NeedImprovement, ", "))
	}
	if len(result.ImprovementTips) > 0 {
		fmt.Fprintf(sb, "Improvement Tips: %s\n", strings.Join(result.ImprovementTips, " "))
	}
}

func writeKidneyFunction(sb *strings.Builder, rec *model.HealthRecord) {
	result, ok := rec.Result.(*model.KidneyFunctionResult)
	if !ok {
		return
	}
	sb.WriteString("\n🧪 Kidney Function:\n")
	writeTestDate(sb, rec)
	fmt.Fprintf(sb, "Overall health: %s\n", result.OverallHealth)
	fmt.Fprintf(sb, "Confidence level: %s\n", result.ConfidenceLevel)
	writeDashList(sb, "Analysis:", result.Analysis)
	writeDashList(sb, "Recommendations:", result.Recommendations)
}

func writeLipidProfile(sb *strings.Builder, rec *model.HealthRecord) {
	result, ok := rec.Result.(*model.LipidProfileResult)
	if !ok {
		return
	}
	sb.WriteString("\n💉 Lipid Profile:\n")
	writeTestDate(sb, rec)
	if len(result.Classification) > 0 {
		sb.WriteString("Classification:\n")
		for _, component := range sortedKeys(result.Classification) {
			fmt.Fprintf(sb, "- %s: %s\n", titleWords(component), titleWords(result.Classification[component]))
		}
	}
	fmt.Fprintf(sb, "ASCVD Risk: %s\n", result.ASCVDRisk)
	writeDashList(sb, "Recommendations:", result.Recommendations)
}

func writeLiverFunction(sb *strings.Builder, rec *model.HealthRecord) {
	result, ok := rec.Result.(*model.LiverFunctionResult)
	if !ok {
		return
	}
	sb.WriteString("\n🩺 Liver Function:\n")
	writeTestDate(sb, rec)
	fmt.Fprintf(sb, "Risk level: %s\n", result.RiskLevel)
	fmt.Fprintf(sb, "Confidence level: %s\n", result.ConfidenceLevel)
	writeDashList(sb, "Parameter Status:", result.ParameterStatus)
	writeDashList(sb, "Recommendations:", result.Recommendations)
}

func writeChronicRisk(sb *strings.Builder, rec *model.HealthRecord) {
	result, ok := rec.Result.(*model.ChronicRiskResult)
	if !ok {
		return
	}
	sb.WriteString("\n⚠️ Chronic Disease Risk:\n")
	writeTestDate(sb, rec)
	fmt.Fprintf(sb, "Diabetes risk: %s\n", result.DiabetesRisk)
	fmt.Fprintf(sb, "Hypertension risk: %s\n", result.HypertensionRisk)
	writeDashList(sb, "Risk Factors:", result.RiskFactors)
	writeDashList(sb, "Recommendations:", result.Recommendations)
}

func writeMentalHealth(sb *strings.Builder, rec *model.HealthRecord) {
	result, ok := rec.Result.(*model.MentalHealthResult)
	if !ok {
		return
	}
	sb.WriteString("\n🧠 Mental Health:\n")
	writeTestDate(sb, rec)
	fmt.Fprintf(sb, "PHQ-9: %d (%s)\n", result.PHQ9Score, result.PHQ9Severity)
	fmt.Fprintf(sb, "GAD-7: %d (%s)\n", result.GAD7Score, result.GAD7Severity)
	if result.Summary != "" {
		fmt.Fprintf(sb, "Summary: %s\n", result.Summary)
	}
	writeDashList(sb, "Recommendations:", result.Recommendations)
}

func writeProgress(sb *strings.Builder, rec *model.HealthRecord) {
	result, ok := rec.Result.(*model.ProgressSnapshot)
	if !ok {
		return
	}
	sb.WriteString("\n📈 Progress Tracking:\n")
	writeTestDate(sb, rec)
	for _, key := range sortedKeys(result.Averages) {
		fmt.Fprintf(sb, "- %s (monthly average): %g\n", key, result.Averages[key])
	}
	writeDashList(sb, "Trends:", result.Trends)
}

// BuildRecommendationsReply 生成个性化建议回复，不经过模型
// 各来源固定顺序：健康评分、肾功能、血脂、生命体征
func BuildRecommendationsReply(records map[model.RecordKind]*model.HealthRecord) string {
	var sb strings.Builder
	sb.WriteString("Based on your health data, here are my personalized recommendations:\n\n")

	if rec := records[model.KindHealthScore]; rec != nil {
		if result, ok := rec.Result.(*model.HealthScoreResult); ok && len(result.ImprovementTips) > 0 {
			sb.WriteString("**Health Score Recommendations:**\n")
			for _, tip := range result.ImprovementTips {
				fmt.Fprintf(&sb, "- %s\n", strings.TrimSpace(tip))
			}
			sb.WriteString("\n")
		}
	}
	if rec := records[model.KindKidneyFunction]; rec != nil {
		if result, ok := rec.Result.(*model.KidneyFunctionResult); ok && len(result.Recommendations) > 0 {
			sb.WriteString("**Kidney Function Recommendations:**\n")
			for _, item := range result.Recommendations {
				fmt.Fprintf(&sb, "- %s\n", item)
			}
			sb.WriteString("\n")
		}
	}
	if rec := records[model.KindLipidProfile]; rec != nil {
		if result, ok := rec.Result.(*model.LipidProfileResult); ok && len(result.Recommendations) > 0 {
			sb.WriteString("**Lipid Profile Recommendations:**\n")
			for _, item := range result.Recommendations {
				fmt.Fprintf(&sb, "- %s\n", item)
			}
			sb.WriteString("\n")
		}
	}
	if rec := records[model.KindVitalSigns]; rec != nil {
		if result, ok := rec.Result.(*model.VitalSignsResult); ok && len(result.Alerts) > 0 {
			sb.WriteString("**Vital Signs Recommendations:**\n")
			for _, alert := range result.Alerts {
				fmt.Fprintf(&sb, "- %s\n", strings.TrimSpace(alert))
			}
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func writeTestDate(sb *strings.Builder, rec *model.HealthRecord) {
	fmt.Fprintf(sb, "Test date: %s\n", rec.Timestamp.Format("2006-01-02"))
}

func writeDashList(sb *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(header)
	sb.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}

func writeDotList(sb *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(header)
	sb.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
}

// sortedKeys 返回排序后的键列表，保证摘要输出稳定
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// titleWords 下划线转空格并逐词首字母大写，用于指标名展示
func titleWords(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
