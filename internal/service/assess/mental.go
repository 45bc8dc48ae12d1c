package assess

import (
	"fmt"

	"github.com/drdeuce/health-agent/internal/model"
)

// MentalHealthInput 心理健康问卷输入
// PHQ9 为 9 项抑郁量表答案（0-3），GAD7 为 7 项焦虑量表答案（0-3）
type MentalHealthInput struct {
	PHQ9    []int  `json:"phq9" binding:"required"`
	GAD7    []int  `json:"gad7" binding:"required"`
	Country string `json:"country"`
}

// Validate 校验问卷题数与取值范围
func (in MentalHealthInput) Validate() error {
	if len(in.PHQ9) != 9 {
		return fmt.Errorf("phq9 requires exactly 9 responses, got %d", len(in.PHQ9))
	}
	if len(in.GAD7) != 7 {
		return fmt.Errorf("gad7 requires exactly 7 responses, got %d", len(in.GAD7))
	}
	for _, v := range append(append([]int{}, in.PHQ9...), in.GAD7...) {
		if v < 0 || v > 3 {
			return fmt.Errorf("questionnaire responses must be between 0 and 3, got %d", v)
		}
	}
	return nil
}

// AssessMentalHealth PHQ-9 与 GAD-7 计分并分级
func AssessMentalHealth(input MentalHealthInput) *model.MentalHealthResult {
	phq9 := sumInts(input.PHQ9)
	gad7 := sumInts(input.GAD7)

	phq9Severity, phq9Rec := phq9Band(phq9)
	gad7Severity, gad7Rec := gad7Band(gad7)

	return &model.MentalHealthResult{
		PHQ9Score:    phq9,
		PHQ9Severity: phq9Severity,
		GAD7Score:    gad7,
		GAD7Severity: gad7Severity,
		Summary: fmt.Sprintf("PHQ-9 score %d/27 (%s). GAD-7 score %d/21 (%s).",
			phq9, phq9Severity, gad7, gad7Severity),
		Recommendations: []string{phq9Rec, gad7Rec},
		CrisisResources: CrisisResourcesFor(input.Country),
	}
}

func phq9Band(score int) (severity, recommendation string) {
	switch {
	case score <= 4:
		return "Minimal depression", "Monitor symptoms and maintain healthy lifestyle habits"
	case score <= 9:
		return "Mild depression", "Consider lifestyle changes and monitor symptoms closely"
	case score <= 14:
		return "Moderate depression", "Consider professional consultation and treatment options"
	case score <= 19:
		return "Moderately severe depression", "Professional treatment is recommended"
	default:
		return "Severe depression", "Immediate professional intervention is strongly recommended"
	}
}

func gad7Band(score int) (severity, recommendation string) {
	switch {
	case score <= 4:
		return "Minimal anxiety", "Continue current coping strategies"
	case score <= 9:
		return "Mild anxiety", "Consider stress management techniques"
	case score <= 14:
		return "Moderate anxiety", "Consider professional consultation"
	default:
		return "Severe anxiety", "Professional treatment is recommended"
	}
}

func sumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
