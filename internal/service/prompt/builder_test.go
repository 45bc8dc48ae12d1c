package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/drdeuce/health-agent/internal/model"
)

func testTime() time.Time {
	return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
}

func fullRecords() map[model.RecordKind]*model.HealthRecord {
	ts := testTime()
	return map[model.RecordKind]*model.HealthRecord{
		model.KindVitalSigns: {
			Kind:      model.KindVitalSigns,
			Timestamp: ts,
			Result: &model.VitalSignsResult{
				Readings: map[string]float64{"heart_rate": 72, "temperature": 36.6},
				Alerts:   []string{"Blood pressure slightly elevated."},
				Severity: "Caution",
			},
		},
		model.KindHealthScore: {
			Kind:      model.KindHealthScore,
			Timestamp: ts,
			Result: &model.HealthScoreResult{
				TotalScore:      82,
				Status:          "Good",
				NeedImprovement: []string{"blood_pressure"},
				ImprovementTips: []string{"Reduce salt intake.", "Exercise regularly."},
			},
		},
		model.KindKidneyFunction: {
			Kind:      model.KindKidneyFunction,
			Timestamp: ts,
			Result: &model.KidneyFunctionResult{
				Analysis:        []string{"Creatinine within normal range."},
				OverallHealth:   "Normal",
				ConfidenceLevel: "High",
				Recommendations: []string{"Stay hydrated."},
			},
		},
		model.KindLipidProfile: {
			Kind:      model.KindLipidProfile,
			Timestamp: ts,
			Result: &model.LipidProfileResult{
				Classification:  map[string]string{"total_cholesterol": "borderline high", "hdl": "normal"},
				ASCVDRisk:       "Low",
				Recommendations: []string{"Limit saturated fats."},
			},
		},
	}
}

// ========== 系统提示词测试 ==========

func TestBuildSystemPrompt_PersonaAlwaysFirst(t *testing.T) {
	got := BuildSystemPrompt(nil, "")
	if got != Persona {
		t.Errorf("empty records and context should yield bare persona, got %q", got)
	}

	got = BuildSystemPrompt(fullRecords(), "knee pain basics")
	if !strings.HasPrefix(got, Persona) {
		t.Error("system prompt must start with the persona")
	}
	if !strings.Contains(got, "Relevant information: knee pain basics") {
		t.Error("retrieved context section missing")
	}
	if !strings.Contains(got, "User's health data for reference:") {
		t.Error("health data section missing")
	}
}

func TestBuildSystemPrompt_NoContextSectionWhenEmpty(t *testing.T) {
	got := BuildSystemPrompt(fullRecords(), "")
	if strings.Contains(got, "Relevant information") {
		t.Error("empty retrieval must not produce a context section")
	}
}

func TestBuildSystemPrompt_Idempotent(t *testing.T) {
	records := fullRecords()
	first := BuildSystemPrompt(records, "ctx")
	second := BuildSystemPrompt(records, "ctx")
	if first != second {
		t.Error("same inputs must produce identical prompts")
	}
}

// ========== 摘要顺序与内容测试 ==========

func TestBuildHealthDigest_SectionOrder(t *testing.T) {
	records := fullRecords()
	records[model.KindReproductiveCycle] = &model.HealthRecord{
		Kind:      model.KindReproductiveCycle,
		Timestamp: testTime(),
		Result: &model.ReproductiveResult{
			Mode:            "cycle",
			NextPeriodStart: "2025-07-01",
			OvulationWindow: "2025-06-20 to 2025-06-24",
			Recommendations: []string{"Track your cycle daily."},
		},
	}

	digest := BuildHealthDigest(records)

	sections := []string{
		"🌸 Reproductive Health Summary:",
		"📊 Vital Signs:",
		"🏆 Health Score:",
		"🧪 Kidney Function:",
		"💉 Lipid Profile:",
	}
	prev := -1
	for _, section := range sections {
		idx := strings.Index(digest, section)
		if idx < 0 {
			t.Fatalf("section %q missing from digest", section)
		}
		if idx < prev {
			t.Errorf("section %q out of order", section)
		}
		prev = idx
	}

	if !strings.HasSuffix(digest, "Personalize your responses based on this data.") {
		t.Error("digest must end with the data usage instruction")
	}
}

func TestBuildHealthDigest_KidneyBeforeLipidRegardlessOfInsertion(t *testing.T) {
	ts := testTime()
	records := map[model.RecordKind]*model.HealthRecord{
		// 血脂先录入，摘要中仍应排在肾功能之后
		model.KindLipidProfile: {
			Kind: model.KindLipidProfile, Timestamp: ts,
			Result: &model.LipidProfileResult{ASCVDRisk: "Low"},
		},
		model.KindKidneyFunction: {
			Kind: model.KindKidneyFunction, Timestamp: ts.Add(time.Hour),
			Result: &model.KidneyFunctionResult{OverallHealth: "Normal", ConfidenceLevel: "High"},
		},
	}

	digest := BuildHealthDigest(records)
	kidney := strings.Index(digest, "🧪 Kidney Function:")
	lipid := strings.Index(digest, "💉 Lipid Profile:")
	if kidney < 0 || lipid < 0 || kidney > lipid {
		t.Errorf("kidney section must precede lipid section (kidney=%d lipid=%d)", kidney, lipid)
	}
}

func TestBuildHealthDigest_Empty(t *testing.T) {
	if got := BuildHealthDigest(nil); got != "" {
		t.Errorf("no records should yield empty digest, got %q", got)
	}
	if got := BuildHealthDigest(map[model.RecordKind]*model.HealthRecord{}); got != "" {
		t.Errorf("empty map should yield empty digest, got %q", got)
	}
}

func TestBuildHealthDigest_TestDateFormat(t *testing.T) {
	digest := BuildHealthDigest(fullRecords())
	if !strings.Contains(digest, "Test date: 2025-06-15") {
		t.Error("test date must render as YYYY-MM-DD")
	}
}

func TestBuildHealthDigest_LipidClassificationTitleCased(t *testing.T) {
	digest := BuildHealthDigest(fullRecords())
	if !strings.Contains(digest, "- Total Cholesterol: Borderline High") {
		t.Errorf("classification entry not title-cased:\n%s", digest)
	}
}

func TestBuildHealthDigest_LatestReproductiveWins(t *testing.T) {
	ts := testTime()
	records := map[model.RecordKind]*model.HealthRecord{
		model.KindReproductiveCycle: {
			Kind: model.KindReproductiveCycle, Timestamp: ts,
			Result: &model.ReproductiveResult{Mode: "cycle", NextPeriodStart: "2025-07-01"},
		},
		model.KindReproductivePregnancy: {
			Kind: model.KindReproductivePregnancy, Timestamp: ts.Add(48 * time.Hour),
			Result: &model.ReproductiveResult{Mode: "pregnancy", GestationalWeeks: 12, ExpectedDelivery: "2025-12-20"},
		},
	}

	digest := BuildHealthDigest(records)
	if !strings.Contains(digest, "Mode: pregnancy") {
		t.Error("most recent reproductive record must be used")
	}
	if strings.Contains(digest, "Next Period") {
		t.Error("older reproductive mode must not appear")
	}
}

// ========== 个性化建议回复测试 ==========

func TestBuildRecommendationsReply_SectionOrder(t *testing.T) {
	reply := BuildRecommendationsReply(fullRecords())

	if !strings.HasPrefix(reply, "Based on your health data, here are my personalized recommendations:") {
		t.Error("reply must start with the fixed header")
	}

	sections := []string{
		"**Health Score Recommendations:**",
		"**Kidney Function Recommendations:**",
		"**Lipid Profile Recommendations:**",
		"**Vital Signs Recommendations:**",
	}
	prev := -1
	for _, section := range sections {
		idx := strings.Index(reply, section)
		if idx < 0 {
			t.Fatalf("section %q missing:\n%s", section, reply)
		}
		if idx < prev {
			t.Errorf("section %q out of order", section)
		}
		prev = idx
	}

	if !strings.Contains(reply, "- Reduce salt intake.") {
		t.Error("improvement tips must appear as bullet items")
	}
}

func TestBuildRecommendationsReply_SkipsEmptySources(t *testing.T) {
	records := map[model.RecordKind]*model.HealthRecord{
		model.KindKidneyFunction: {
			Kind: model.KindKidneyFunction, Timestamp: testTime(),
			Result: &model.KidneyFunctionResult{Recommendations: []string{"Stay hydrated."}},
		},
	}

	reply := BuildRecommendationsReply(records)
	if strings.Contains(reply, "Health Score") || strings.Contains(reply, "Lipid") {
		t.Error("sources without data must be omitted")
	}
	if !strings.Contains(reply, "**Kidney Function Recommendations:**") {
		t.Error("kidney section missing")
	}
}
