package assess

import (
	"context"
	"errors"
	"testing"

	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ========== 化验单抽取测试 ==========

type mockExtractModel struct {
	reply string
	err   error
}

func (m *mockExtractModel) Generate(ctx context.Context, input []*schema.Message, opts ...ecomodel.Option) (*schema.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.reply}, nil
}

func (m *mockExtractModel) Stream(ctx context.Context, input []*schema.Message, opts ...ecomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func (m *mockExtractModel) BindTools(tools []*schema.ToolInfo) error { return nil }

func TestParseValueJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]float64
		wantErr bool
	}{
		{
			name: "clean json",
			raw:  `{"ALT (SGPT)": 45, "Albumin": 4.1}`,
			want: map[string]float64{"ALT (SGPT)": 45, "Albumin": 4.1},
		},
		{
			name: "fenced with prose",
			raw:  "Here are the values:\n```json\n{\"AST (SGOT)\": 32}\n```",
			want: map[string]float64{"AST (SGOT)": 32},
		},
		{
			name: "trailing comma repaired",
			raw:  `{"ALT (SGPT)": 45,}`,
			want: map[string]float64{"ALT (SGPT)": 45},
		},
		{
			name: "string values tolerated",
			raw:  `{"GGT": "58"}`,
			want: map[string]float64{"GGT": 58},
		},
		{
			name:    "no object at all",
			raw:     "I could not find any lab values.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValueJSON(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseValueJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseValueJSON() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("parseValueJSON()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestExtractLiverValues(t *testing.T) {
	extractor := NewExtractor(&mockExtractModel{reply: `{"ALT (SGPT)": 61, "Total Bilirubin": 1.4}`})
	values, err := extractor.ExtractLiverValues(context.Background(), "ALT 61 U/L, Total Bilirubin 1.4 mg/dL")
	if err != nil {
		t.Fatalf("ExtractLiverValues() error = %v", err)
	}
	if values["ALT (SGPT)"] != 61 || values["Total Bilirubin"] != 1.4 {
		t.Errorf("values = %v", values)
	}
}

func TestExtractLiverValues_Errors(t *testing.T) {
	if _, err := NewExtractor(nil).ExtractLiverValues(context.Background(), "report"); err == nil {
		t.Error("nil chat model must error")
	}
	if _, err := NewExtractor(&mockExtractModel{reply: "{}"}).ExtractLiverValues(context.Background(), "   "); err == nil {
		t.Error("empty report must error")
	}
	if _, err := NewExtractor(&mockExtractModel{err: errors.New("upstream down")}).ExtractLiverValues(context.Background(), "report"); err == nil {
		t.Error("model failure must propagate")
	}
}
