package assess

import (
	"fmt"
	"math"
	"strings"

	"github.com/drdeuce/health-agent/internal/model"
)

// ScoreHealth 对一组健康指标打分并归一化到百分制
// BMI 权重 10 分，其余指标各 5 分，缺失项不计入满分
func ScoreHealth(data map[string]any) *model.HealthScoreResult {
	total := 0
	max := 0
	var needImprovement []string
	var tips []string

	for _, key := range sortedAnyKeys(data) {
		value := data[key]
		if value == nil {
			continue
		}

		switch key {
		case "Weight (BMI)":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			max += 10
			switch {
			case v < 18.5:
				needImprovement = append(needImprovement, key+" (Low)")
				tips = append(tips, "Gain weight to reach a healthy BMI range.")
			case v <= 24.9:
				total += 10
			case v <= 29.9:
				total += 5
				needImprovement = append(needImprovement, key+" (Moderately High)")
				tips = append(tips, "Reduce BMI slightly through diet and exercise.")
			default:
				needImprovement = append(needImprovement, key+" (High)")
				tips = append(tips, "Reduce Weight (BMI) through proper lifestyle changes.")
			}

		case "Temperature":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			max += 5
			if v >= 36.1 && v <= 37.2 {
				total += 5
			} else {
				side := " (High)"
				if v < 36.1 {
					side = " (Low)"
				}
				needImprovement = append(needImprovement, key+side)
				tips = append(tips, "Adjust temperature through dietary or medical guidance.")
			}

		case "Blood Pressure (Systolic)":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			max += 5
			if v >= 90 && v <= 120 {
				total += 5
			} else {
				needImprovement = append(needImprovement, key+" (Abnormal)")
				tips = append(tips, "Monitor systolic pressure with a doctor.")
			}

		case "Blood Pressure (Diastolic)":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			max += 5
			if v >= 60 && v <= 80 {
				total += 5
			} else {
				needImprovement = append(needImprovement, key+" (Abnormal)")
				tips = append(tips, "Monitor diastolic pressure with a doctor.")
			}

		case "Malaria", "Widal Test", "Hepatitis B", "Voluntary Serology":
			s, ok := value.(string)
			if !ok {
				continue
			}
			max += 5
			if strings.EqualFold(s, "negative") {
				total += 5
			} else {
				needImprovement = append(needImprovement, key+" (Positive)")
				tips = append(tips, fmt.Sprintf("Seek medical attention for %s.", key))
			}

		case "SpO2":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			max += 5
			if v >= 95 {
				total += 5
			} else {
				needImprovement = append(needImprovement, key+" (Low)")
				tips = append(tips, "Improve oxygen level through breathing exercises or see a doctor.")
			}

		case "ECG (Heart Rate)":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			max += 5
			if v >= 60 && v <= 100 {
				total += 5
			} else {
				needImprovement = append(needImprovement, key+" (Abnormal)")
				tips = append(tips, "Consult a cardiologist about your heart rate.")
			}

		case "Waist Circumference":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			max += 5
			if v <= 94 {
				total += 5
			} else {
				needImprovement = append(needImprovement, key+" (High)")
				tips = append(tips, "Reduce waist size through targeted exercise.")
			}

		case "Glucose":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			max += 5
			if v >= 70 && v <= 100 {
				total += 5
			} else {
				side := " (High)"
				if v < 70 {
					side = " (Low)"
				}
				needImprovement = append(needImprovement, key+side)
				tips = append(tips, "Keep glucose in range through balanced meals and regular testing.")
			}
		}
	}

	finalScore := 0
	if max > 0 {
		finalScore = int(math.Round(float64(total) / float64(max) * 100))
	}

	var status string
	switch {
	case finalScore >= 85:
		status = "Excellent"
	case finalScore >= 70:
		status = "Good"
	case finalScore >= 50:
		status = "Fair"
	default:
		status = "Poor"
	}

	if len(tips) == 0 {
		tips = []string{"Keep maintaining your health!"}
	}

	return &model.HealthScoreResult{
		TotalScore:      finalScore,
		Status:          status,
		NeedImprovement: needImprovement,
		ImprovementTips: tips,
	}
}
