package model

import "time"

// RecordKind 健康记录类型（封闭集合）
type RecordKind string

const (
	KindVitalSigns             RecordKind = "vital_signs"
	KindHealthScore            RecordKind = "health_score"
	KindKidneyFunction         RecordKind = "kidney_function"
	KindLipidProfile           RecordKind = "lipid_profile"
	KindLiverFunction          RecordKind = "liver_function"
	KindChronicRisk            RecordKind = "chronic_risk"
	KindMentalHealth           RecordKind = "mental_health"
	KindReproductiveCycle      RecordKind = "reproductive_cycle"
	KindReproductivePregnancy  RecordKind = "reproductive_pregnancy"
	KindReproductivePostpartum RecordKind = "reproductive_postpartum"
	KindProgress               RecordKind = "progress"
	KindLifestyle              RecordKind = "lifestyle"
	KindWeeklyDigest           RecordKind = "weekly_digest"
)

// AppendOnly 判断该类型是否保留历史列表
// 生命体征、生殖健康、生活习惯与进度跟踪的价值在于趋势分析，按列表追加；其余类型整体覆盖
func (k RecordKind) AppendOnly() bool {
	switch k {
	case KindVitalSigns, KindReproductiveCycle, KindReproductivePregnancy,
		KindReproductivePostpartum, KindProgress, KindLifestyle:
		return true
	}
	return false
}

// Valid 判断是否为已知类型
func (k RecordKind) Valid() bool {
	switch k {
	case KindVitalSigns, KindHealthScore, KindKidneyFunction, KindLipidProfile,
		KindLiverFunction, KindChronicRisk, KindMentalHealth,
		KindReproductiveCycle, KindReproductivePregnancy, KindReproductivePostpartum,
		KindProgress, KindLifestyle, KindWeeklyDigest:
		return true
	}
	return false
}

// HealthRecord 一次评估的完整记录
type HealthRecord struct {
	Kind      RecordKind     `json:"kind"`
	Input     map[string]any `json:"input"`
	Result    RecordResult   `json:"result"`
	Timestamp time.Time      `json:"timestamp"`
}

// RecordResult 评估结果（按类型的 tagged union，通过 type switch 消费）
type RecordResult interface {
	RecordKind() RecordKind
}

// VitalSignsResult 生命体征监测结果
type VitalSignsResult struct {
	Readings            map[string]float64 `json:"readings"`
	Alerts              []string           `json:"alerts"`
	Severity            string             `json:"severity"` // Normal, Caution, Critical
	SuggestConsultation bool               `json:"suggest_consultation"`
	Recommendation      string             `json:"recommendation"`
}

func (*VitalSignsResult) RecordKind() RecordKind { return KindVitalSigns }

// HealthScoreResult 健康评分结果
type HealthScoreResult struct {
	TotalScore      int      `json:"total_score"`
	Status          string   `json:"status"` // Excellent, Good, Fair, Poor
	NeedImprovement []string `json:"vitals_needing_improvement"`
	ImprovementTips []string `json:"improvement_tips"`
}

func (*HealthScoreResult) RecordKind() RecordKind { return KindHealthScore }

// KidneyFunctionResult 肾功能分析结果
type KidneyFunctionResult struct {
	Analysis          []string `json:"analysis"`
	OverallHealth     string   `json:"overall_health"`
	ConfidenceLevel   string   `json:"confidence_level"`
	MissingParameters []string `json:"missing_parameters,omitempty"`
	Recommendations   []string `json:"recommendations"`
}

func (*KidneyFunctionResult) RecordKind() RecordKind { return KindKidneyFunction }

// LipidProfileResult 血脂分析结果
type LipidProfileResult struct {
	Classification  map[string]string `json:"classification"` // component -> level
	ASCVDRisk       string            `json:"ascvd_risk"`
	Recommendations []string          `json:"recommendations"`
}

func (*LipidProfileResult) RecordKind() RecordKind { return KindLipidProfile }

// LiverFunctionResult 肝功能评估结果
type LiverFunctionResult struct {
	ParameterStatus []string `json:"parameter_status"`
	RiskLevel       string   `json:"risk_level"`
	ConfidenceLevel string   `json:"confidence_level"`
	Recommendations []string `json:"recommendations"`
}

func (*LiverFunctionResult) RecordKind() RecordKind { return KindLiverFunction }

// ChronicRiskResult 慢病风险预测结果，糖尿病与高血压分别评级
type ChronicRiskResult struct {
	DiabetesRisk     string   `json:"diabetes_risk"`
	HypertensionRisk string   `json:"hypertension_risk"`
	RiskFactors      []string `json:"risk_factors"`
	Recommendations  []string `json:"recommendations"`
}

func (*ChronicRiskResult) RecordKind() RecordKind { return KindChronicRisk }

// MentalHealthResult 心理健康评估结果（PHQ-9 / GAD-7 问卷分）
type MentalHealthResult struct {
	PHQ9Score       int      `json:"phq9_score"`
	PHQ9Severity    string   `json:"phq9_severity"`
	GAD7Score       int      `json:"gad7_score"`
	GAD7Severity    string   `json:"gad7_severity"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	CrisisResources []string `json:"crisis_resources,omitempty"`
}

func (*MentalHealthResult) RecordKind() RecordKind { return KindMentalHealth }

// ReproductiveResult 生殖健康结果，Mode 区分 cycle/pregnancy/postpartum
type ReproductiveResult struct {
	Mode              string   `json:"mode"`
	NextPeriodStart   string   `json:"next_period_start,omitempty"`
	OvulationWindow   string   `json:"ovulation_window,omitempty"`
	GestationalWeeks  int      `json:"gestational_weeks,omitempty"`
	ExpectedDelivery  string   `json:"expected_delivery,omitempty"`
	DaysSinceDelivery int      `json:"days_since_delivery,omitempty"`
	OvulationInfo     string   `json:"ovulation_info,omitempty"`
	Diagnosis         []string `json:"diagnosis,omitempty"`
	Flags             []string `json:"flags,omitempty"`
	Recommendations   []string `json:"recommendations"`
}

// RecordKind 按模式映射到对应的记录类型
func (r *ReproductiveResult) RecordKind() RecordKind {
	switch r.Mode {
	case "pregnancy":
		return KindReproductivePregnancy
	case "postpartum":
		return KindReproductivePostpartum
	default:
		return KindReproductiveCycle
	}
}

// ProgressSnapshot 进度跟踪快照（按时间追加）
type ProgressSnapshot struct {
	Readings map[string]float64 `json:"readings"`
	Averages map[string]float64 `json:"monthly_averages,omitempty"`
	Trends   []string           `json:"trends,omitempty"`
}

func (*ProgressSnapshot) RecordKind() RecordKind { return KindProgress }

// HabitStat 单个生活习惯的周度统计
type HabitStat struct {
	Average float64 `json:"avg"`
	Trend   string  `json:"trend"`
}

// LifestyleSnapshot 生活习惯周度汇总（按时间追加）
type LifestyleSnapshot struct {
	Habits          map[string]float64   `json:"habits"`
	SummaryPeriod   string               `json:"summary_period,omitempty"`
	HabitSummary    map[string]HabitStat `json:"habit_summary,omitempty"`
	DataPoints      int                  `json:"data_points"`
	Recommendations []string             `json:"recommendations"`
}

func (*LifestyleSnapshot) RecordKind() RecordKind { return KindLifestyle }

// MetricStat 单项体征的周度统计
type MetricStat struct {
	Average float64 `json:"average"`
	Trend   string  `json:"trend"`
}

// WeeklyDigest 周度体征摘要
type WeeklyDigest struct {
	SummaryPeriod   string                `json:"summary_period,omitempty"`
	WeeklySummary   map[string]MetricStat `json:"weekly_summary,omitempty"`
	Recommendations []string              `json:"recommendations"`
	DataPoints      int                   `json:"data_points"`
}

func (*WeeklyDigest) RecordKind() RecordKind { return KindWeeklyDigest }
