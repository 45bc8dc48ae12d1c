package assess

import (
	"strings"

	"github.com/drdeuce/health-agent/internal/model"
)

// ChronicRiskInput 慢病风险预测输入
type ChronicRiskInput struct {
	Glucose                   float64 `json:"glucose"`
	BMI                       float64 `json:"bmi"`
	SystolicBP                float64 `json:"systolic_bp"`
	DiastolicBP               float64 `json:"diastolic_bp"`
	FamilyHistoryDiabetes     string  `json:"family_history_diabetes"`
	FamilyHistoryHypertension string  `json:"family_history_hypertension"`
	PhysicalActivity          string  `json:"physical_activity"`
	Diet                      string  `json:"diet"`
	Stress                    string  `json:"stress"`
	Smoking                   string  `json:"smoking"`
	Alcohol                   string  `json:"alcohol"`
}

// PredictChronicRisk 糖尿病与高血压风险分别累计打分后评级
func PredictChronicRisk(input ChronicRiskInput) *model.ChronicRiskResult {
	var factors []string
	diabetes := 0
	hypertension := 0

	switch {
	case input.Glucose > 125:
		diabetes += 2
		factors = append(factors, "🔴 Very High Glucose Level")
	case input.Glucose > 100:
		diabetes++
		factors = append(factors, "🟠 Borderline Glucose Level")
	}

	switch {
	case input.BMI >= 30:
		diabetes += 2
		factors = append(factors, "🔴 Obese BMI")
	case input.BMI >= 25:
		diabetes++
		factors = append(factors, "🟠 Overweight BMI")
	}

	if strings.EqualFold(input.FamilyHistoryDiabetes, "yes") {
		diabetes++
		factors = append(factors, "🧬 Family History of Diabetes")
	}
	switch strings.ToLower(input.PhysicalActivity) {
	case "sedentary", "low":
		diabetes++
		factors = append(factors, "🛋️ Low Physical Activity")
	}
	switch strings.ToLower(input.Diet) {
	case "processed", "unhealthy":
		diabetes++
		factors = append(factors, "🍔 Unhealthy Diet")
	}

	switch {
	case input.SystolicBP >= 140 || input.DiastolicBP >= 90:
		hypertension += 2
		factors = append(factors, "🔴 High Blood Pressure")
	case input.SystolicBP >= 130 || input.DiastolicBP >= 80:
		hypertension++
		factors = append(factors, "🟠 Elevated Blood Pressure")
	}

	if strings.EqualFold(input.Stress, "high") {
		hypertension++
		factors = append(factors, "😰 High Stress Level")
	}
	if strings.EqualFold(input.Smoking, "yes") {
		hypertension++
		factors = append(factors, "🚬 Smoking Habit")
	}
	if strings.EqualFold(input.Alcohol, "yes") {
		hypertension++
		factors = append(factors, "🍷 Frequent Alcohol Consumption")
	}
	if strings.EqualFold(input.FamilyHistoryHypertension, "yes") {
		hypertension++
		factors = append(factors, "🧬 Family History of Hypertension")
	}

	diabetesLevel := riskLabel(diabetes)
	hypertensionLevel := riskLabel(hypertension)

	return &model.ChronicRiskResult{
		DiabetesRisk:     diabetesLevel,
		HypertensionRisk: hypertensionLevel,
		RiskFactors:      factors,
		Recommendations:  chronicRecommendations(diabetesLevel, hypertensionLevel),
	}
}

func riskLabel(score int) string {
	switch {
	case score >= 4:
		return "🔴 High Risk"
	case score >= 2:
		return "🟠 Moderate Risk"
	default:
		return "🟢 Low Risk"
	}
}

func chronicRecommendations(diabetesLevel, hypertensionLevel string) []string {
	var recs []string
	if diabetesLevel != "🟢 Low Risk" {
		recs = append(recs,
			"🥗 Adopt a low-sugar, high-fiber diet.",
			"🚶 Increase daily physical activity (30+ mins walk).",
			"🩺 Schedule a fasting glucose or A1C test.")
	}
	if hypertensionLevel != "🟢 Low Risk" {
		recs = append(recs,
			"🧂 Reduce salt and processed food intake.",
			"🧘 Practice stress reduction techniques (yoga, meditation).",
			"🩺 Monitor your blood pressure regularly.")
	}
	if len(recs) == 0 {
		recs = append(recs, "✅ Maintain your current healthy lifestyle!")
	}
	return recs
}
