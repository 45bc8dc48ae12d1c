package assess

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/drdeuce/health-agent/internal/model"
)

// SummarizeProgress 汇总近 30 天生命体征记录的均值与趋势
// history 为按时间先后排列的体征记录，仅统计数值型读数
func SummarizeProgress(history []*model.HealthRecord, now time.Time) *model.ProgressSnapshot {
	cutoff := now.AddDate(0, 0, -30)

	var recent []*model.HealthRecord
	for _, rec := range history {
		if rec.Timestamp.Before(cutoff) {
			continue
		}
		if _, ok := rec.Result.(*model.VitalSignsResult); ok {
			recent = append(recent, rec)
		}
	}
	if len(recent) == 0 {
		return &model.ProgressSnapshot{}
	}

	series := make(map[string][]float64)
	for _, rec := range recent {
		result := rec.Result.(*model.VitalSignsResult)
		for key, value := range result.Readings {
			series[key] = append(series[key], value)
		}
	}

	averages := make(map[string]float64, len(series))
	var trends []string
	latest := recent[len(recent)-1].Result.(*model.VitalSignsResult).Readings

	for _, key := range sortedFloatSliceKeys(series) {
		values := series[key]
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		averages[key] = math.Round(sum/float64(len(values))*100) / 100

		symbol := "→ Stable trend"
		if len(values) > 1 {
			if values[len(values)-1] > values[0] {
				symbol = "↑ Increasing trend"
			} else if values[len(values)-1] < values[0] {
				symbol = "↓ Decreasing trend"
			}
		}
		trends = append(trends, fmt.Sprintf("%s: %s (avg %.2f over %d readings)", key, symbol, averages[key], len(values)))
	}

	return &model.ProgressSnapshot{
		Readings: latest,
		Averages: averages,
		Trends:   trends,
	}
}

func sortedFloatSliceKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
