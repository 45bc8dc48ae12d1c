package assess

import (
	"math"
	"strings"

	"github.com/drdeuce/health-agent/internal/model"
)

// LipidInput 血脂分析输入，未提供的 Non-HDL 与 VLDL 会自动估算
type LipidInput struct {
	Age           int     `json:"age" binding:"required"`
	Sex           string  `json:"sex"`
	Smoker        string  `json:"smoker"`
	Hypertension  string  `json:"hypertension"`
	Diabetes      string  `json:"diabetes"`
	FamilyHistory string  `json:"family_history"`
	TotalChol     float64 `json:"total_chol"`
	LDL           float64 `json:"ldl"`
	HDL           float64 `json:"hdl"`
	Triglycerides float64 `json:"triglycerides"`
	NonHDL        float64 `json:"non_hdl"`
	VLDL          float64 `json:"vldl"`
}

// lipidBand 分级阈值，value < threshold 即命中 label
type lipidBand struct {
	threshold float64
	label     string
}

var lipidBands = map[string][]lipidBand{
	"total_chol": {{200, "optimal"}, {240, "borderline"}, {math.Inf(1), "high"}},
	"ldl": {{100, "optimal"}, {130, "near optimal"}, {160, "borderline"},
		{190, "high"}, {math.Inf(1), "very high"}},
	"hdl_male":   {{40, "low"}, {46, "borderline"}, {60, "optimal"}, {math.Inf(1), "high"}},
	"hdl_female": {{50, "low"}, {56, "borderline"}, {60, "optimal"}, {math.Inf(1), "high"}},
	"triglycerides": {{150, "optimal"}, {200, "borderline"}, {500, "high"},
		{math.Inf(1), "very high"}},
	"non_hdl": {{130, "optimal"}, {160, "borderline"}, {190, "high"},
		{math.Inf(1), "very high"}},
	"vldl": {{30, "optimal"}, {40, "borderline"}, {math.Inf(1), "high"}},
}

// AnalyzeLipidProfile 血脂分析：逐项分级、ASCVD 风险打分、个性化建议
func AnalyzeLipidProfile(input LipidInput) *model.LipidProfileResult {
	// 派生指标估算
	if input.NonHDL == 0 && input.TotalChol != 0 && input.HDL != 0 {
		input.NonHDL = input.TotalChol - input.HDL
	}
	if input.VLDL == 0 && input.Triglycerides != 0 {
		input.VLDL = math.Floor(input.Triglycerides / 5)
	}

	classification := make(map[string]string)
	classify := func(component string, value float64) {
		if value == 0 {
			return
		}
		band := component
		if component == "hdl" {
			if strings.EqualFold(input.Sex, "female") {
				band = "hdl_female"
			} else {
				band = "hdl_male"
			}
		}
		for _, b := range lipidBands[band] {
			if value < b.threshold {
				classification[component] = b.label
				return
			}
		}
	}
	classify("total_chol", input.TotalChol)
	classify("ldl", input.LDL)
	classify("hdl", input.HDL)
	classify("triglycerides", input.Triglycerides)
	classify("non_hdl", input.NonHDL)
	classify("vldl", input.VLDL)

	risk := ascvdRisk(input)

	return &model.LipidProfileResult{
		Classification:  classification,
		ASCVDRisk:       risk,
		Recommendations: lipidRecommendations(classification, risk),
	}
}

// ascvdRisk 简化版 ASCVD 风险打分
func ascvdRisk(input LipidInput) string {
	score := 0
	if input.Age > 45 {
		score++
	}
	if input.Smoker != "" && !strings.EqualFold(input.Smoker, "Non-smoker") && !strings.EqualFold(input.Smoker, "No") {
		score++
	}
	if strings.EqualFold(input.Hypertension, "Yes") {
		score++
	}
	if strings.HasPrefix(strings.ToLower(input.Diabetes), "yes") {
		score++
	}
	if strings.HasPrefix(strings.ToLower(input.FamilyHistory), "yes") {
		score++
	}
	if input.LDL > 160 {
		score += 2
	} else if input.LDL > 130 {
		score++
	}

	switch {
	case score < 2:
		return "Low"
	case score < 4:
		return "Borderline"
	case score < 6:
		return "Intermediate"
	default:
		return "High"
	}
}

func lipidRecommendations(classification map[string]string, risk string) []string {
	recs := []string{
		"Maintain a heart-healthy diet (Mediterranean diet recommended)",
		"Aim for at least 150 minutes of moderate exercise weekly",
	}

	if level := classification["non_hdl"]; level == "high" || level == "very high" {
		recs = append(recs, "Focus on reducing LDL and triglyceride levels to lower Non-HDL cholesterol")
	}
	if classification["vldl"] == "high" {
		recs = append(recs, "High VLDL suggests need to reduce simple carbohydrates and alcohol intake")
		recs = append(recs, "Consider increasing omega-3 fatty acid consumption")
	}
	if level := classification["ldl"]; level == "high" || level == "very high" {
		recs = append(recs, "Consider reducing saturated fats and increasing soluble fiber")
		if risk == "Intermediate" || risk == "High" {
			recs = append(recs, "Consult your doctor about statin therapy")
		}
	}
	if classification["hdl"] == "low" {
		recs = append(recs, "Increase physical activity to raise HDL levels")
		recs = append(recs, "Consider healthy fat sources like olive oil and fatty fish")
	}
	if level := classification["triglycerides"]; level == "high" || level == "very high" {
		recs = append(recs, "Reduce intake of refined carbohydrates and sugars")
		recs = append(recs, "Limit alcohol consumption")
	}
	if risk == "High" {
		recs = append(recs, "Urgent consultation with a cardiologist recommended")
	} else if risk == "Intermediate" {
		recs = append(recs, "Consider more frequent lipid monitoring (every 3-6 months)")
	}
	return recs
}
