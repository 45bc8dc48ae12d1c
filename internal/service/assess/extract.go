package assess

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/kaptinlin/jsonrepair"
)

// extractionPrompt 要求模型只输出 JSON 对象，键为英文参数名，值为数值
const extractionPrompt = `You are a medical lab report parser. Extract liver function test values from the report below.
Return ONLY a JSON object mapping parameter names to numeric values. Use exactly these keys when present:
"ALT (SGPT)", "AST (SGOT)", "ALP", "GGT", "Total Bilirubin", "Direct Bilirubin", "Indirect Bilirubin",
"Albumin", "Globulin", "A/G Ratio", "INR", "Ammonia", "LDH", "Total Protein".
Omit parameters that do not appear in the report. Do not include units, comments, or markdown.

Report:
%s`

// Extractor 从化验单文本中抽取肝功能指标
// 模型输出经 JSON 修复后解析，适配模型夹带散文或代码块围栏的情况
type Extractor struct {
	chatModel ecomodel.ChatModel
}

// NewExtractor 创建化验单抽取器
func NewExtractor(chatModel ecomodel.ChatModel) *Extractor {
	return &Extractor{chatModel: chatModel}
}

// ExtractLiverValues 抽取肝功能指标，返回参数名到数值的映射
func (e *Extractor) ExtractLiverValues(ctx context.Context, reportText string) (map[string]float64, error) {
	if e.chatModel == nil {
		return nil, fmt.Errorf("chat model is not configured")
	}
	if strings.TrimSpace(reportText) == "" {
		return nil, fmt.Errorf("report text is empty")
	}

	resp, err := e.chatModel.Generate(ctx, []*schema.Message{
		{Role: schema.User, Content: fmt.Sprintf(extractionPrompt, reportText)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract values: %w", err)
	}

	values, err := parseValueJSON(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extracted values: %w", err)
	}
	return values, nil
}

// parseValueJSON 解析模型输出的 JSON，先走快速路径再修复
func parseValueJSON(raw string) (map[string]float64, error) {
	s := strings.TrimSpace(raw)

	// 尝试提取 JSON 对象区域
	if i := strings.IndexByte(s, '{'); i >= 0 {
		if j := strings.LastIndexByte(s, '}'); j >= i {
			s = s[i : j+1]
		}
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	if !json.Valid([]byte(s)) {
		repaired, err := jsonrepair.JSONRepair(s)
		if err != nil {
			return nil, fmt.Errorf("invalid JSON in model output: %w", err)
		}
		s = repaired
	}

	var values map[string]float64
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		// 容忍字符串形式的数值
		var loose map[string]any
		if err2 := json.Unmarshal([]byte(s), &loose); err2 != nil {
			return nil, err
		}
		values = make(map[string]float64, len(loose))
		for k, v := range loose {
			if f, ok := toFloat(v); ok {
				values[k] = f
			}
		}
	}
	return values, nil
}
