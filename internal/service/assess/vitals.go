// Package assess 实现各类健康评估的规则引擎
// 评估逻辑为纯函数，输入原始指标，输出结构化结论，由 handler 写入记录存储
package assess

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drdeuce/health-agent/internal/model"
)

// MonitorVitalSigns 逐项解读生命体征并产出告警
// 数值项按参考区间分级，血清学项按阴/阳性解读
func MonitorVitalSigns(readings map[string]any) *model.VitalSignsResult {
	numeric := make(map[string]float64)
	var alerts []string
	critical := false
	caution := false

	for _, key := range sortedAnyKeys(readings) {
		value := readings[key]
		if v, ok := toFloat(value); ok {
			numeric[key] = v
		}

		switch key {
		case "Glucose":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			switch {
			case v < 70:
				alerts = append(alerts, "🚨 Glucose is too low (Hypoglycemia). Consider eating something sugary immediately.")
				critical = true
			case v > 100:
				alerts = append(alerts, "⚠️ Glucose is high. This could indicate prediabetes or diabetes. Monitor your diet and consult a doctor.")
				caution = true
			}

		case "SpO2":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			switch {
			case v < 92:
				alerts = append(alerts, "🚨 SpO2 is critically low. This could indicate respiratory issues. Seek medical attention immediately.")
				critical = true
			case v < 95:
				alerts = append(alerts, "⚠️ SpO2 is slightly low. Consider improving air quality and practicing deep breathing exercises.")
				caution = true
			}

		case "ECG (Heart Rate)":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			switch {
			case v < 60:
				alerts = append(alerts, "⚠️ Heart rate is low (Bradycardia). This could indicate an underlying condition. Consult a doctor.")
				caution = true
			case v > 100:
				alerts = append(alerts, "⚠️ Heart rate is high (Tachycardia). This could be due to stress, dehydration, or other factors. Monitor closely.")
				caution = true
			}

		case "Blood Pressure (Systolic)":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			switch {
			case v > 140:
				alerts = append(alerts, "🚨 Systolic blood pressure is too high. This could indicate hypertension. Reduce salt intake and consult a doctor.")
				critical = true
			case v < 90:
				alerts = append(alerts, "⚠️ Systolic blood pressure is too low. This could indicate hypotension. Stay hydrated and consult a doctor.")
				caution = true
			}

		case "Blood Pressure (Diastolic)":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			switch {
			case v > 90:
				alerts = append(alerts, "🚨 Diastolic blood pressure is too high. This could indicate hypertension. Consult a doctor.")
				critical = true
			case v < 60:
				alerts = append(alerts, "⚠️ Diastolic blood pressure is too low. This could indicate hypotension. Stay hydrated and monitor your health.")
				caution = true
			}

		case "Temperature":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			switch {
			case v < 36.0:
				alerts = append(alerts, "⚠️ Body temperature is low. This could indicate hypothermia. Stay warm and monitor your health.")
				caution = true
			case v > 37.5:
				alerts = append(alerts, "⚠️ Body temperature is high. This could indicate a fever. Stay hydrated and rest.")
				caution = true
			}

		case "Weight (BMI)":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			switch {
			case v < 16:
				alerts = append(alerts, "🚨 BMI is very severely underweight (<16). This may indicate malnutrition or an eating disorder. Seek immediate medical evaluation.")
				critical = true
			case v < 18.5:
				alerts = append(alerts, "⚠️ BMI is underweight. May indicate inadequate nutrition. Consider increasing caloric intake and consulting a dietitian.")
				caution = true
			case v >= 30:
				alerts = append(alerts, "🚨 BMI indicates obesity. Increased risk of type 2 diabetes, hypertension, and metabolic syndrome. Consider a structured weight loss plan.")
				critical = true
			case v >= 25:
				alerts = append(alerts, "⚠️ BMI is overweight (25-29.9). Increased risk of cardiovascular diseases. Recommend weight control via reduced sugar, more fiber, and regular aerobic activity.")
				caution = true
			}

		case "Waist Circumference":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			switch {
			case v >= 102:
				alerts = append(alerts, "🚨 Waist circumference is very high (≥102 cm). Strong indicator of visceral fat accumulation. Seek clinical evaluation.")
				critical = true
			case v >= 90:
				alerts = append(alerts, "🚨 Waist circumference is high (90-101 cm). This indicates abdominal obesity. Adopt a targeted weight management program.")
				critical = true
			case v >= 80:
				alerts = append(alerts, "⚠️ Waist circumference is borderline high (80-89 cm). Consider reducing processed foods and increasing physical activity.")
				caution = true
			}

		case "Malaria", "Widal Test", "Hepatitis B", "Hepatitis C", "HIV", "Voluntary Serology":
			s, ok := value.(string)
			if !ok {
				continue
			}
			if strings.EqualFold(s, "Positive") {
				alerts = append(alerts, fmt.Sprintf("🚨 %s test is POSITIVE. Seek medical attention for confirmatory testing and follow-up care.", key))
				critical = true
			}

		case "Lung Capacity":
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			if v < 2.5 {
				alerts = append(alerts, "⚠️ Lung capacity is low (< 2.5L). This could indicate restrictive lung issues. Consult a pulmonologist.")
				caution = true
			}
		}
	}

	severity := "Normal"
	recommendation := "All vital signs are within normal ranges. Keep maintaining your healthy habits."
	if critical {
		severity = "Critical"
		recommendation = "One or more vital signs need urgent attention. Please consult a doctor as soon as possible."
	} else if caution {
		severity = "Caution"
		recommendation = "Some vital signs are outside the normal range. Monitor them closely and consider a check-up."
	}

	return &model.VitalSignsResult{
		Readings:            numeric,
		Alerts:              alerts,
		Severity:            severity,
		SuggestConsultation: critical,
		Recommendation:      recommendation,
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
