package assess

import (
	"fmt"
	"time"

	"github.com/drdeuce/health-agent/internal/model"
)

// CycleEntry 一次月经周期记录
type CycleEntry struct {
	StartDate   string `json:"start_date" binding:"required"` // YYYY-MM-DD
	CycleLength int    `json:"cycle_length" binding:"required"`
}

// ReproductiveInput 生殖健康评估输入，Mode 决定使用哪组字段
type ReproductiveInput struct {
	Mode string `json:"mode" binding:"required"` // cycle, pregnancy, postpartum

	// cycle
	Cycles []CycleEntry `json:"cycles"`

	// pregnancy
	LMPDate  string   `json:"lmp_date"` // 末次月经 YYYY-MM-DD
	Symptoms []string `json:"symptoms"`

	// postpartum
	DeliveryDate        string `json:"delivery_date"` // YYYY-MM-DD
	BreastfeedingMonths int    `json:"breastfeeding_months"`
	HeavyBleeding       bool   `json:"heavy_bleeding"`
	MoodChanges         bool   `json:"mood_changes"`
}

// AssessReproductive 按模式分派评估，now 作为参数便于测试
func AssessReproductive(input ReproductiveInput, now time.Time) (*model.ReproductiveResult, error) {
	switch input.Mode {
	case "cycle":
		return assessCycle(input.Cycles)
	case "pregnancy":
		return assessPregnancy(input, now)
	case "postpartum":
		return assessPostpartum(input, now)
	}
	return nil, fmt.Errorf("unknown reproductive mode: %q", input.Mode)
}

// assessCycle 周期预测：最近一次开始日 + 平均周期长度
// 至少需要 3 条记录才产出预测
func assessCycle(cycles []CycleEntry) (*model.ReproductiveResult, error) {
	if len(cycles) < 3 {
		return &model.ReproductiveResult{
			Mode: "cycle",
			Recommendations: []string{
				"You've entered fewer than 3 cycle samples. At least 3 months of data is needed for accurate period and ovulation predictions.",
				"Track your cycle regularly to become more aware of your patterns and symptoms.",
				"Stay hydrated. Drinking more water can help reduce bloating and cramps.",
				"Light exercise like walking or stretching may help ease period cramps.",
			},
		}, nil
	}

	var last time.Time
	totalLen := 0
	for _, c := range cycles {
		start, err := time.Parse("2006-01-02", c.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid cycle start_date %q: %w", c.StartDate, err)
		}
		if start.After(last) {
			last = start
		}
		totalLen += c.CycleLength
	}
	avgLen := int(float64(totalLen)/float64(len(cycles)) + 0.5)

	nextStart := last.AddDate(0, 0, avgLen)
	ovulation := nextStart.AddDate(0, 0, -14)
	window := fmt.Sprintf("%s to %s",
		ovulation.AddDate(0, 0, -2).Format("2006-01-02"),
		ovulation.AddDate(0, 0, 2).Format("2006-01-02"))

	return &model.ReproductiveResult{
		Mode:            "cycle",
		NextPeriodStart: nextStart.Format("2006-01-02"),
		OvulationWindow: window,
		Recommendations: []string{
			fmt.Sprintf("🩸 Your next period is predicted on %s. Log PMS symptoms like bloating or irritability 3-7 days before.", nextStart.Format("2006-01-02")),
			fmt.Sprintf("🧬 Ovulation is expected between %s. This is when your chances of pregnancy are highest.", window),
			"💡 Tip: Avoid unprotected sex 5 days before ovulation and 1 day after if not planning pregnancy.",
		},
	}, nil
}

// assessPregnancy 孕周计算、按孕期给症状诊断、预产窗口
func assessPregnancy(input ReproductiveInput, now time.Time) (*model.ReproductiveResult, error) {
	lmp, err := time.Parse("2006-01-02", input.LMPDate)
	if err != nil {
		return nil, fmt.Errorf("invalid lmp_date %q: %w", input.LMPDate, err)
	}

	days := int(now.Sub(lmp).Hours() / 24)
	if days < 0 {
		return nil, fmt.Errorf("lmp_date %q is in the future", input.LMPDate)
	}
	weeks := days / 7

	delivery := fmt.Sprintf("%s to %s",
		lmp.AddDate(0, 0, 37*7).Format("2006-01-02"),
		lmp.AddDate(0, 0, 42*7).Format("2006-01-02"))

	return &model.ReproductiveResult{
		Mode:             "pregnancy",
		GestationalWeeks: weeks,
		ExpectedDelivery: delivery,
		Diagnosis:        pregnancyDiagnosis(input.Symptoms, weeks),
		Recommendations: []string{
			"Attend all scheduled antenatal appointments.",
			"Take prenatal vitamins with folic acid daily.",
			"Report any heavy bleeding, severe headaches, or vision changes to your doctor immediately.",
		},
	}, nil
}

// pregnancyDiagnosis 按孕期三阶段匹配症状预警
func pregnancyDiagnosis(symptoms []string, weeks int) []string {
	has := func(name string) bool {
		for _, s := range symptoms {
			if s == name {
				return true
			}
		}
		return false
	}

	var diagnosis []string
	switch {
	case weeks <= 12:
		if has("Light spotting (pink or brown)") {
			diagnosis = append(diagnosis, "Implantation Bleeding (🟢 Normal)")
		}
		if has("Moderate cramps or back pain with bleeding") {
			diagnosis = append(diagnosis, "Possible Threatened Miscarriage (🟠 Caution)")
		}
		if has("Heavy bleeding with clots + strong cramps") {
			diagnosis = append(diagnosis, "Miscarriage Risk (🔴 Alert)")
		}
	case weeks <= 27:
		if has("Painless, bright red bleeding") {
			diagnosis = append(diagnosis, "Placenta Previa (🔴 High Risk)")
		}
	default:
		if has("Severe headaches + swelling or vision changes") {
			diagnosis = append(diagnosis, "Possible Preeclampsia (🔴 Critical)")
		}
	}

	if len(diagnosis) == 0 {
		diagnosis = []string{"No critical symptoms detected"}
	}
	return diagnosis
}

// assessPostpartum 产后天数、哺乳对排卵恢复的影响与风险标记
func assessPostpartum(input ReproductiveInput, now time.Time) (*model.ReproductiveResult, error) {
	delivery, err := time.Parse("2006-01-02", input.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("invalid delivery_date %q: %w", input.DeliveryDate, err)
	}

	days := int(now.Sub(delivery).Hours() / 24)
	if days < 0 {
		return nil, fmt.Errorf("delivery_date %q is in the future", input.DeliveryDate)
	}

	var flags []string
	if input.HeavyBleeding {
		flags = append(flags, "🔴 Heavy postpartum bleeding reported. Contact your healthcare provider promptly.")
	}
	if input.MoodChanges {
		flags = append(flags, "🟠 Mood changes reported. Persistent low mood may indicate postpartum depression. Consider a mental health screening.")
	}

	return &model.ReproductiveResult{
		Mode:              "postpartum",
		DaysSinceDelivery: days,
		OvulationInfo:     fmt.Sprintf("🕒 Ovulation may delay by approx. %.1f months", float64(input.BreastfeedingMonths)*0.5),
		Flags:             flags,
		Recommendations: []string{
			"Rest as much as possible and accept help from family and friends.",
			"Keep your postpartum check-up appointments.",
			"Stay hydrated and maintain balanced nutrition, especially while breastfeeding.",
		},
	}, nil
}
