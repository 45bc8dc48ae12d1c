package assess

import (
	"fmt"
	"math"
	"strings"

	"github.com/drdeuce/health-agent/internal/model"
)

// KidneyInput 肾功能评估输入
// Values 按英文参数名给值，未提供的派生指标会自动推算
type KidneyInput struct {
	Values map[string]float64 `json:"values" binding:"required"`
	Age    int                `json:"age"`
	Sex    string             `json:"sex"`
}

// kidneyParam 单个参数的参考区间与异常解读
type kidneyParam struct {
	low, high          float64
	hasLow, hasHigh    bool
	elevated, decreased string
}

var kidneyParams = map[string]kidneyParam{
	"BUN":                  {low: 7, high: 20, hasLow: true, hasHigh: true, elevated: "High levels may indicate kidney dysfunction or dehydration.", decreased: "Low levels may indicate malnutrition or liver disease."},
	"Serum Urea":           {low: 2.5, high: 7.1, hasLow: true, hasHigh: true, elevated: "Elevated levels may suggest kidney issues or high protein intake.", decreased: "Low levels may indicate malnutrition or liver disease."},
	"Serum Creatinine":     {low: 0.6, high: 1.2, hasLow: true, hasHigh: true, elevated: "High levels may indicate impaired kidney function.", decreased: "Low levels may indicate reduced muscle mass."},
	"eGFR":                 {low: 90, hasLow: true, decreased: "Lower levels indicate reduced kidney filtration capacity."},
	"BUN/Creatinine Ratio": {low: 10, high: 20, hasLow: true, hasHigh: true, elevated: "Elevated BUN/Creatinine Ratio may indicate dehydration or reduced kidney perfusion.", decreased: "Low BUN/Creatinine Ratio may indicate liver disease or malnutrition."},
	"Urea/Creatinine Ratio": {low: 40, high: 100, hasLow: true, hasHigh: true, elevated: "High Urea/Creatinine Ratio may indicate dehydration or high protein intake.", decreased: "Low Urea/Creatinine Ratio may indicate liver disease or malnutrition."},
	"Serum Sodium":         {low: 135, high: 145, hasLow: true, hasHigh: true, elevated: "High levels may indicate dehydration.", decreased: "Low levels may indicate overhydration or kidney dysfunction."},
	"Serum Potassium":      {low: 3.5, high: 5.0, hasLow: true, hasHigh: true, elevated: "High levels may indicate kidney dysfunction or acidosis.", decreased: "Low levels may indicate alkalosis or diuretic use."},
	"Serum Calcium":        {low: 8.8, high: 10.2, hasLow: true, hasHigh: true, elevated: "High levels may indicate hyperparathyroidism or cancer.", decreased: "Low levels may indicate kidney disease or vitamin D deficiency."},
	"Serum Uric Acid":      {low: 3.5, high: 7.2, hasLow: true, hasHigh: true, elevated: "High levels may indicate gout or kidney dysfunction.", decreased: "Low levels may indicate liver disease."},
	"Chloride":             {low: 96, high: 106, hasLow: true, hasHigh: true, elevated: "High levels may indicate dehydration.", decreased: "Low levels may indicate alkalosis."},
	"Bicarbonate":          {low: 22, high: 29, hasLow: true, hasHigh: true, elevated: "High levels may indicate metabolic alkalosis.", decreased: "Low levels may indicate metabolic acidosis."},
	"ACR":                  {high: 30, hasHigh: true, elevated: "High levels indicate increased albumin excretion, a marker of kidney damage."},
}

// kidneyCoreParams 参与置信度评估的参数列表
var kidneyCoreParams = []string{
	"eGFR", "ACR", "Serum Creatinine", "Serum Urea", "Serum Potassium",
	"Bicarbonate", "Chloride", "Serum Calcium", "Serum Uric Acid",
	"BUN", "BUN/Creatinine Ratio", "Urea/Creatinine Ratio",
}

// AnalyzeKidneyFunction 肾功能分析
// 先补全派生指标（BUN、ACR、比值、eGFR），再逐项解读并给出整体结论
func AnalyzeKidneyFunction(input KidneyInput) *model.KidneyFunctionResult {
	values := enrichKidneyValues(input)

	var analysis []string
	for _, param := range append([]string{
		"Serum Urea", "Serum Creatinine", "Serum Sodium", "Serum Potassium",
		"Serum Calcium", "Serum Uric Acid", "Chloride", "Bicarbonate",
	}, "ACR", "eGFR", "BUN/Creatinine Ratio", "Urea/Creatinine Ratio", "BUN") {
		value, ok := values[param]
		if !ok {
			continue
		}
		info := kidneyParams[param]
		switch {
		case info.hasHigh && value > info.high:
			analysis = append(analysis, fmt.Sprintf("%s: %.2f → High (Above Normal Range). %s", param, value, info.elevated))
		case info.hasLow && value < info.low:
			analysis = append(analysis, fmt.Sprintf("%s: %.2f → Low (Below Normal Range). %s", param, value, info.decreased))
		default:
			analysis = append(analysis, fmt.Sprintf("%s: %.2f → Normal", param, value))
		}
	}

	if egfr, ok := values["eGFR"]; ok {
		analysis = append(analysis, fmt.Sprintf("eGFR: %.2f → %s", egfr, egfrStage(egfr)))
	}

	egfr, hasEGFR := values["eGFR"]
	acr, hasACR := values["ACR"]

	var overall string
	switch {
	case hasEGFR && hasACR:
		switch {
		case egfr >= 90 && acr < 30:
			overall = "✅ Your kidney health is normal."
		case egfr < 30:
			overall = "❗ You may have severe kidney disease. Immediate medical attention is recommended."
		case egfr < 60 || acr >= 300:
			overall = "⚠️ You may have moderate kidney impairment. Consult a nephrologist."
		default:
			overall = "ℹ️ You may have mild kidney impairment. Routine monitoring and lifestyle changes are recommended."
		}
	case hasEGFR:
		switch {
		case egfr >= 90:
			overall = "✅ Your kidney filtration rate is normal."
		case egfr < 30:
			overall = "❗ You may have severe kidney disease. Immediate medical attention is recommended."
		case egfr < 60:
			overall = "⚠️ You may have moderate kidney impairment. Consult a nephrologist."
		default:
			overall = "ℹ️ You may have mild kidney impairment. Routine monitoring and lifestyle adjustments are recommended."
		}
	case hasACR:
		if acr < 30 {
			overall = "✅ Your albumin-to-creatinine ratio is normal."
		} else {
			overall = "⚠️ You may have kidney damage. Consult a nephrologist for further evaluation."
		}
	default:
		overall = "❓ Insufficient data to fully assess kidney health. Please provide eGFR or ACR."
	}

	var missing []string
	for _, param := range kidneyCoreParams {
		if _, ok := values[param]; !ok {
			missing = append(missing, param)
		}
	}
	if len(missing) > 0 {
		overall += fmt.Sprintf("\n🔎 Note: Assessment based on incomplete data. Missing parameters: %s.", strings.Join(missing, ", "))
	}

	confidence := "High"
	if len(missing) > 3 {
		confidence = "Low"
	} else if len(missing) > 0 {
		confidence = "Medium"
	}

	return &model.KidneyFunctionResult{
		Analysis:          analysis,
		OverallHealth:     overall,
		ConfidenceLevel:   confidence,
		MissingParameters: missing,
		Recommendations:   kidneyRecommendations(values, missing),
	}
}

// enrichKidneyValues 推算未提供的派生指标
func enrichKidneyValues(input KidneyInput) map[string]float64 {
	values := make(map[string]float64, len(input.Values))
	for k, v := range input.Values {
		if v != 0 {
			values[k] = v
		}
	}

	if _, ok := values["BUN"]; !ok {
		if urea, ok := values["Serum Urea"]; ok {
			values["BUN"] = urea / 2.14
		}
	}
	if _, ok := values["ACR"]; !ok {
		albumin, okA := values["Urine Albumin"]
		urineCr, okC := values["Urine Creatinine"]
		if okA && okC && urineCr != 0 {
			values["ACR"] = albumin / urineCr
		}
	}
	if _, ok := values["BUN/Creatinine Ratio"]; !ok {
		bun, okB := values["BUN"]
		cr, okC := values["Serum Creatinine"]
		if okB && okC && cr != 0 {
			values["BUN/Creatinine Ratio"] = bun / cr
		}
	}
	if _, ok := values["Urea/Creatinine Ratio"]; !ok {
		urea, okU := values["Serum Urea"]
		cr, okC := values["Serum Creatinine"]
		if okU && okC && cr != 0 {
			values["Urea/Creatinine Ratio"] = urea / cr
		}
	}
	if _, ok := values["eGFR"]; !ok {
		cr, okC := values["Serum Creatinine"]
		if okC && input.Age > 0 {
			// MDRD 简化公式
			k := 1.0
			if strings.EqualFold(input.Sex, "female") {
				k = 0.742
			}
			values["eGFR"] = 186 * math.Pow(cr, -1.154) * math.Pow(float64(input.Age), -0.203) * k
		}
	}
	return values
}

func egfrStage(egfr float64) string {
	switch {
	case egfr >= 90:
		return "Stage 1 (Normal or High)"
	case egfr >= 60:
		return "Stage 2 (Mildly Decreased)"
	case egfr >= 30:
		return "Stage 3 (Moderate CKD)"
	case egfr >= 15:
		return "Stage 4 (Severe CKD)"
	default:
		return "Stage 5 (Kidney Failure)"
	}
}

func kidneyRecommendations(values map[string]float64, missing []string) []string {
	recs := []string{
		"Stay well hydrated throughout the day.",
		"Limit sodium intake and avoid excessive protein consumption.",
	}
	if egfr, ok := values["eGFR"]; ok && egfr < 60 {
		recs = append(recs, "Schedule a follow-up with a nephrologist for your reduced filtration rate.")
	}
	if acr, ok := values["ACR"]; ok && acr >= 30 {
		recs = append(recs, "Repeat the albumin-to-creatinine test to confirm albuminuria.")
	}
	if uric, ok := values["Serum Uric Acid"]; ok && uric > 7.2 {
		recs = append(recs, "Reduce purine-rich foods to lower uric acid levels.")
	}
	if len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("Additional tests recommended: %s.", strings.Join(missing, ", ")))
	}
	return recs
}
