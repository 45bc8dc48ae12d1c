package assess

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/drdeuce/health-agent/internal/model"
)

// SummarizeWeeklyVitals 汇总近 7 天生命体征的均值、趋势与建议
// 数值项从记录输入中提取，血清学项只按最近一次记录告警
func SummarizeWeeklyVitals(history []*model.HealthRecord, now time.Time) *model.WeeklyDigest {
	cutoff := now.AddDate(0, 0, -7)

	var recent []*model.HealthRecord
	for _, rec := range history {
		if !rec.Timestamp.Before(cutoff) {
			recent = append(recent, rec)
		}
	}
	if len(recent) == 0 {
		return &model.WeeklyDigest{Recommendations: []string{}}
	}

	series := make(map[string][]float64)
	for _, rec := range recent {
		for key, raw := range rec.Input {
			if v, ok := toFloat(raw); ok {
				series[key] = append(series[key], v)
			}
		}
	}

	summary := make(map[string]model.MetricStat, len(series))
	for _, key := range sortedFloatSliceKeys(series) {
		values := series[key]
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		summary[key] = model.MetricStat{
			Average: math.Round(sum/float64(len(values))*100) / 100,
			Trend:   metricTrend(values),
		}
	}

	return &model.WeeklyDigest{
		SummaryPeriod:   fmt.Sprintf("%s to %s", cutoff.Format("2006-01-02"), now.Format("2006-01-02")),
		WeeklySummary:   summary,
		Recommendations: digestRecommendations(summary, recent[len(recent)-1]),
		DataPoints:      len(recent),
	}
}

func metricTrend(values []float64) string {
	if len(values) > 1 {
		if values[len(values)-1] > values[0] {
			return "increasing: 📈"
		}
		if values[len(values)-1] < values[0] {
			return "decreasing: 📉"
		}
	}
	return "stable: ➖"
}

// digestRecommendations 按周均值给建议，血清学结果取最近一次记录
func digestRecommendations(summary map[string]model.MetricStat, last *model.HealthRecord) []string {
	recommendations := []string{}

	for _, metric := range sortedMetricKeys(summary) {
		avg := summary[metric].Average
		switch metric {
		case "Glucose":
			if avg > 100 {
				recommendations = append(recommendations, "⚠️ High average glucose detected. Monitor sugar intake and consult a doctor.")
			} else if avg < 70 {
				recommendations = append(recommendations, "⚠️ Low average glucose. Ensure adequate nutrition.")
			}
		case "SpO2":
			if avg < 95 {
				recommendations = append(recommendations, "⚠️ Low oxygen levels. Consider respiratory checkups.")
			}
		case "Temperature":
			if avg > 37.5 {
				recommendations = append(recommendations, "🌡️ Slight fever trend. Stay hydrated and monitor symptoms.")
			}
		case "Weight (BMI)":
			if avg > 25 {
				recommendations = append(recommendations, "📉 BMI suggests overweight. Consider dietary and fitness improvements.")
			}
		case "Waist Circumference":
			if avg > 90 {
				recommendations = append(recommendations, "📏 High waist circumference. Abdominal fat risk, exercise more.")
			}
		}
	}

	for _, infection := range []string{"Hepatitis B", "Hepatitis C", "Malaria"} {
		raw, present := last.Input[infection]
		if !present {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			continue
		}
		if strings.EqualFold(value, "Positive") {
			recommendations = append(recommendations, fmt.Sprintf("🚨 %s test is positive. Please consult a healthcare provider.", infection))
		} else if strings.EqualFold(value, "Negative") {
			recommendations = append(recommendations, fmt.Sprintf("✅ %s test is negative. No signs of infection.", infection))
		}
	}

	return recommendations
}

func sortedMetricKeys(m map[string]model.MetricStat) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
