package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ========== 文档解析测试 ==========

func TestTextParser(t *testing.T) {
	parser := &textParser{}

	docs, err := parser.Parse(context.Background(), strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Content != "hello world" {
		t.Errorf("docs = %+v", docs)
	}

	empty, err := parser.Parse(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty input should yield no documents, got %d", len(empty))
	}
}

func TestNewParser_UnsupportedType(t *testing.T) {
	if _, err := newParser(context.Background(), "report.exe"); err == nil {
		t.Error("unsupported extension must error")
	}
}

func TestFileExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"report.pdf", ".pdf"},
		{"/tmp/a.b/lab-results.docx", ".docx"},
		{"noextension", ""},
	}
	for _, tt := range tests {
		if got := fileExt(tt.path); got != tt.want {
			t.Errorf("fileExt(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// ========== ES 字段映射测试 ==========

func TestDocumentToESFields(t *testing.T) {
	doc := &schema.Document{
		Content: "chunk body",
		MetaData: map[string]any{
			"document_id": "d1",
			"chunk_index": 3,
		},
	}

	fields := documentToESFields(doc)

	content, ok := fields["content"]
	if !ok || content.Value != "chunk body" || content.EmbedKey != "content_vector" {
		t.Errorf("content field = %+v", content)
	}
	if fields["document_id"].Value != "d1" || fields["chunk_index"].Value != 3 {
		t.Errorf("metadata fields = %+v", fields)
	}
}

// ========== 文档摘要测试 ==========

type mockSummaryModel struct {
	reply    string
	err      error
	lastMsgs []*schema.Message
}

func (m *mockSummaryModel) Generate(ctx context.Context, input []*schema.Message, opts ...ecomodel.Option) (*schema.Message, error) {
	m.lastMsgs = input
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.reply}, nil
}

func (m *mockSummaryModel) Stream(ctx context.Context, input []*schema.Message, opts ...ecomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func (m *mockSummaryModel) BindTools(tools []*schema.ToolInfo) error { return nil }

func TestSummarizer_ShortTextSkipsModel(t *testing.T) {
	mock := &mockSummaryModel{reply: "should not be used"}
	summary, err := NewSummarizer(mock).Summarize(context.Background(), "too short")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary != summaryTooShortReply {
		t.Errorf("summary = %q", summary)
	}
	if mock.lastMsgs != nil {
		t.Error("model must not be called for short text")
	}
}

func TestSummarizer_LongTextTruncated(t *testing.T) {
	mock := &mockSummaryModel{reply: "Your results look stable."}
	longText := strings.Repeat("lab value 5.4 mmol/L. ", 1000)

	summary, err := NewSummarizer(mock).Summarize(context.Background(), longText)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !strings.HasPrefix(summary, "📄 Summary:\n\n") {
		t.Errorf("summary = %q", summary)
	}
	if len(mock.lastMsgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(mock.lastMsgs))
	}
	if len(mock.lastMsgs[0].Content) > maxSummarizeInput+len(summarizePrompt) {
		t.Errorf("prompt not truncated, %d chars", len(mock.lastMsgs[0].Content))
	}
}

func TestSummarizer_Errors(t *testing.T) {
	text := strings.Repeat("x", minSummarizableLength)
	if _, err := NewSummarizer(nil).Summarize(context.Background(), text); err == nil {
		t.Error("nil chat model must error")
	}
	mock := &mockSummaryModel{err: errors.New("upstream down")}
	if _, err := NewSummarizer(mock).Summarize(context.Background(), text); err == nil {
		t.Error("model failure must propagate")
	}
}
