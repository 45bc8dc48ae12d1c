package assess

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/drdeuce/health-agent/internal/model"
)

// LifestyleInput 一次生活习惯打卡
// 习惯名到数值的映射，如 water（杯/天）、rest（小时/晚）、exercise（次/周）
type LifestyleInput struct {
	Habits map[string]float64 `json:"habits" binding:"required"`
}

// SummarizeLifestyle 汇总近 7 天生活习惯的均值与趋势并生成建议
// history 为既往打卡记录，current 为本次提交，计入最新数据点
func SummarizeLifestyle(history []*model.HealthRecord, current map[string]float64, now time.Time) *model.LifestyleSnapshot {
	cutoff := now.AddDate(0, 0, -7)

	series := make(map[string][]float64)
	points := 0
	for _, rec := range history {
		if rec.Timestamp.Before(cutoff) {
			continue
		}
		points++
		for key, raw := range rec.Input {
			if v, ok := toFloat(raw); ok {
				series[key] = append(series[key], v)
			}
		}
	}

	points++
	for _, key := range sortedFloatKeys(current) {
		series[key] = append(series[key], current[key])
	}

	summary := make(map[string]model.HabitStat, len(series))
	for _, key := range sortedFloatSliceKeys(series) {
		values := series[key]
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		summary[key] = model.HabitStat{
			Average: math.Round(sum/float64(len(values))*100) / 100,
			Trend:   habitTrend(values),
		}
	}

	return &model.LifestyleSnapshot{
		Habits:          current,
		SummaryPeriod:   fmt.Sprintf("%s to %s", cutoff.Format("2006-01-02"), now.Format("2006-01-02")),
		HabitSummary:    summary,
		DataPoints:      points,
		Recommendations: lifestyleRecommendations(summary),
	}
}

func habitTrend(values []float64) string {
	if len(values) > 1 {
		if values[len(values)-1] > values[0] {
			return "increasing: 📈 You're improving this habit!"
		}
		if values[len(values)-1] < values[0] {
			return "decreasing: 📉 Consistency has dropped recently."
		}
	}
	return "stable: ➖ Your habit has been stable."
}

// lifestyleRecommendations 按习惯均值生成建议，全部达标时给一条鼓励
func lifestyleRecommendations(summary map[string]model.HabitStat) []string {
	var tips []string

	for _, habit := range sortedHabitKeys(summary) {
		avg := summary[habit].Average
		switch habit {
		case "water":
			if avg < 5 {
				tips = append(tips, fmt.Sprintf("💧 Your average water intake is %.1f cups. Try to reach 8 cups daily.", avg))
			} else {
				tips = append(tips, fmt.Sprintf("✅ You're staying hydrated with %.1f cups/day. Great work!", avg))
			}
		case "rest":
			if avg < 6 {
				tips = append(tips, fmt.Sprintf("🛌 You're sleeping %.1f hrs/night. Aim for 7-9 hours for full recovery.", avg))
			}
		case "screen_time":
			if avg > 6 {
				tips = append(tips, fmt.Sprintf("📱 Screen time is high at %.1f hrs/day. Take hourly breaks to reduce eye strain.", avg))
			}
		case "exercise":
			if avg < 3 {
				tips = append(tips, fmt.Sprintf("🏋️ You're exercising %.1fx/week. Target 3-4 sessions to boost fitness.", avg))
			}
		case "meditation":
			if avg < 1 {
				tips = append(tips, "🧘 Try meditating daily to improve mindfulness and calm.")
			}
		case "fruit":
			if avg < 1 {
				tips = append(tips, fmt.Sprintf("🍎 You're averaging %.1f fruit servings/day. Try reaching 2 daily.", avg))
			}
		case "vegetable":
			if avg < 1 {
				tips = append(tips, "🥦 Veggies are important! Add 2-3 servings per day to your meals.")
			}
		case "smoking":
			if avg > 0 {
				tips = append(tips, fmt.Sprintf("🚭 You're averaging %.1f cigarettes/day. Reducing or quitting will improve your health.", avg))
			}
		case "alcohol":
			if avg > 2 {
				tips = append(tips, fmt.Sprintf("🍷 Your alcohol intake is a bit high at %.1f/week. Consider cutting down.", avg))
			}
		}
	}

	if len(tips) == 0 {
		return []string{"✅ You're doing great! Keep up the healthy habits."}
	}
	return tips
}

func sortedFloatKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedHabitKeys(m map[string]model.HabitStat) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
