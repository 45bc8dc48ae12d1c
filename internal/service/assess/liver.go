package assess

import (
	"fmt"

	"github.com/drdeuce/health-agent/internal/model"
)

// LiverInput 肝功能评估输入
// Values 按英文参数名给值，生活方式字段影响附加建议
type LiverInput struct {
	Values            map[string]float64 `json:"values" binding:"required"`
	Symptoms          []string           `json:"symptoms"`
	DietaryHabits     string             `json:"dietary_habits"`
	SmokingAlcoholUse string             `json:"smoking_alcohol_use"`
	MedicalConditions string             `json:"medical_conditions"`
	Medications       string             `json:"medications"`
	HepatitisMarkers  []string           `json:"hepatitis_markers"`
}

type liverParam struct {
	low, high       float64
	hasLow, hasHigh bool
	unit            string
	elevated        string
	decreased       string
}

var liverParams = map[string]liverParam{
	"ALT (SGPT)":         {high: 56, hasHigh: true, unit: "U/L", elevated: "Elevated (suggests liver inflammation or injury)"},
	"AST (SGOT)":         {high: 40, hasHigh: true, unit: "U/L", elevated: "Elevated (suggests liver damage or muscle injury)"},
	"ALP":                {low: 44, high: 120, hasLow: true, hasHigh: true, unit: "U/L", elevated: "Elevated (suggests bile duct obstruction, bone/liver disease)", decreased: "Decreased (may suggest malnutrition, hypothyroidism, or zinc deficiency)"},
	"GGT":                {high: 60, hasHigh: true, unit: "U/L", elevated: "Elevated (suggests cholestasis, alcohol use, or drug effect)"},
	"Total Bilirubin":    {low: 0.3, high: 1.2, hasLow: true, hasHigh: true, unit: "mg/dL", elevated: "Elevated (suggests jaundice or liver dysfunction)"},
	"Direct Bilirubin":   {high: 0.3, hasHigh: true, unit: "mg/dL", elevated: "Elevated (suggests cholestasis or hepatocellular disease)"},
	"Indirect Bilirubin": {low: 0.2, high: 1.0, hasLow: true, hasHigh: true, unit: "mg/dL", elevated: "Elevated (suggests hemolysis or Gilbert's syndrome)"},
	"Albumin":            {low: 3.5, high: 5.0, hasLow: true, hasHigh: true, unit: "g/dL", decreased: "Decreased (suggests chronic liver disease or malnutrition)"},
	"Globulin":           {low: 2.0, high: 3.5, hasLow: true, hasHigh: true, unit: "g/dL", elevated: "Elevated (suggests chronic inflammation or liver disease)", decreased: "Decreased (may suggest immune deficiency or nephrotic syndrome)"},
	"A/G Ratio":          {low: 1.0, high: 2.2, hasLow: true, hasHigh: true, elevated: "Elevated (may suggest genetic conditions or high protein intake)", decreased: "Decreased (suggests chronic liver or kidney disease)"},
	"INR":                {low: 0.8, high: 1.2, hasLow: true, hasHigh: true, elevated: "Elevated (suggests impaired liver synthetic function or anticoagulation)", decreased: "Decreased (may suggest high clotting tendency)"},
	"Ammonia":            {low: 15, high: 45, hasLow: true, hasHigh: true, unit: "µg/dL", elevated: "Elevated (suggests hepatic encephalopathy or severe liver dysfunction)"},
	"LDH":                {low: 140, high: 280, hasLow: true, hasHigh: true, unit: "U/L", elevated: "Elevated (suggests tissue damage, hemolysis, or liver disease)", decreased: "Decreased (rare, may suggest malnutrition)"},
	"ALT:AST Ratio":      {low: 1, high: 2, hasLow: true, hasHigh: true, elevated: "Elevated (>2, suggests alcoholic hepatitis)", decreased: "Decreased (<1, suggests possible alcoholic liver disease)"},
	"Total Protein":      {low: 6.0, high: 8.3, hasLow: true, hasHigh: true, unit: "g/dL", elevated: "Elevated (suggests chronic inflammation or infection)", decreased: "Decreased (suggests malnutrition, nephrotic syndrome, or liver disease)"},
}

var liverParamOrder = []string{
	"ALT (SGPT)", "AST (SGOT)", "ALP", "GGT", "Total Bilirubin", "Direct Bilirubin",
	"Albumin", "INR", "Ammonia", "LDH", "Globulin", "A/G Ratio", "ALT:AST Ratio",
	"Indirect Bilirubin", "Total Protein",
}

// AnalyzeLiverFunction 肝功能评估：逐项分级 + 风险评级 + 临床与生活方式建议
func AnalyzeLiverFunction(input LiverInput) *model.LiverFunctionResult {
	values := make(map[string]float64, len(input.Values))
	for k, v := range input.Values {
		if v != 0 {
			values[k] = v
		}
	}
	// 两项转氨酶齐备时补算比值
	if _, ok := values["ALT:AST Ratio"]; !ok {
		alt, okA := values["ALT (SGPT)"]
		ast, okS := values["AST (SGOT)"]
		if okA && okS && ast != 0 {
			values["ALT:AST Ratio"] = alt / ast
		}
	}

	var status []string
	elevated := false
	decreased := false
	var missing []string

	for _, param := range liverParamOrder {
		value, ok := values[param]
		if !ok {
			missing = append(missing, param)
			continue
		}
		ref := liverParams[param]
		var grade, interpretation string
		switch {
		case ref.hasLow && value < ref.low:
			grade = "Decreased"
			interpretation = ref.decreased
			if interpretation == "" {
				interpretation = "Normal"
			}
			decreased = true
		case ref.hasHigh && value > ref.high:
			grade = "Elevated"
			interpretation = ref.elevated
			if interpretation == "" {
				interpretation = "Normal"
			}
			elevated = true
		default:
			grade = "Normal"
			interpretation = "Normal"
		}
		if ref.unit != "" {
			status = append(status, fmt.Sprintf("%s: %.2f %s → %s (%s)", param, value, ref.unit, grade, interpretation))
		} else {
			status = append(status, fmt.Sprintf("%s: %.2f → %s (%s)", param, value, grade, interpretation))
		}
	}

	risk := "Low"
	if elevated && decreased {
		risk = "High"
	} else if elevated || decreased {
		risk = "Medium"
	}

	confidence := "High"
	if len(missing) > 3 {
		confidence = "Low"
	} else if len(missing) > 0 {
		confidence = "Medium"
	}

	return &model.LiverFunctionResult{
		ParameterStatus: status,
		RiskLevel:       risk,
		ConfidenceLevel: confidence,
		Recommendations: liverRecommendations(input, elevated, decreased),
	}
}

func liverRecommendations(input LiverInput, elevated, decreased bool) []string {
	var recs []string
	switch {
	case elevated && decreased:
		recs = append(recs, "Some of your liver test results are elevated and some are decreased. Please consult your doctor for a comprehensive evaluation.")
	case elevated:
		recs = append(recs, "Some of your liver test results are elevated. Please consult your doctor for further evaluation.")
	case decreased:
		recs = append(recs, "Some of your liver test results are decreased. Please consult your doctor for further evaluation.")
	default:
		recs = append(recs, "All your liver test results are within normal limits. Maintain a healthy lifestyle.")
	}

	hasSymptom := func(name string) bool {
		for _, s := range input.Symptoms {
			if s == name {
				return true
			}
		}
		return false
	}
	if hasSymptom("Jaundice (yellowing of skin/eyes)") {
		recs = append(recs, "Yellowing of skin or eyes (jaundice) detected. Seek urgent medical attention.")
	}
	if hasSymptom("Abdominal Pain") || hasSymptom("Nausea") || hasSymptom("Vomiting") {
		recs = append(recs, "Symptoms such as abdominal pain, nausea, or vomiting may indicate liver or digestive issues. Please consult your doctor.")
	}

	switch input.DietaryHabits {
	case "Mostly Unhealthy (Processed Foods and Sugary Drinks 1–2 times a week)",
		"Very Unhealthy (Processed Foods and Sugary Drinks 3–5 times a week)":
		recs = append(recs, "Consider improving your dietary habits to reduce liver strain. Focus on fruits, vegetables, and whole grains.")
	}

	for _, marker := range input.HepatitisMarkers {
		if marker == "HBsAg (Hepatitis B Surface Antigen)" || marker == "HCV RNA (Hepatitis C Virus RNA)" {
			recs = append(recs, "Positive hepatitis markers detected. Follow up with viral hepatitis screening and liver ultrasound.")
			break
		}
	}

	switch input.SmokingAlcoholUse {
	case "Heavy smoker or drinker":
		recs = append(recs, "Heavy smoking or alcohol use can worsen liver health. Please consider reducing or quitting and consult your doctor.")
	case "Regular smoker or drinker":
		recs = append(recs, "Regular smoking or alcohol use may impact your liver. Moderation and medical advice are recommended.")
	}

	switch input.MedicalConditions {
	case "Liver Cirrhosis", "Hepatitis B", "Hepatitis C", "Fatty Liver Disease":
		recs = append(recs, "Your medical history indicates a liver-related condition. Ensure regular follow-up with your healthcare provider.")
	}

	switch input.Medications {
	case "Steroids", "Antipsychotics", "Recreational Drugs",
		"Medications Related to Liver Disease (e.g., Methotrexate, Amiodarone)":
		recs = append(recs, "Your medication use may contribute to liver strain. Consult your doctor about possible alternatives.")
	}

	return recs
}
