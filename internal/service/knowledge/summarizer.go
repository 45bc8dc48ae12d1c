package knowledge

import (
	"context"
	"fmt"
	"strings"

	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	// 低于该长度的文本不值得摘要
	minSummarizableLength = 100
	// 超长文本截断后再送模型
	maxSummarizeInput = 10000

	summaryTooShortReply = "Document too short for meaningful summary."

	summarizePrompt = `Summarize the following medical document for a patient.
Highlight test results, diagnoses, and any recommended follow-up actions.
Use plain language and keep the summary under 300 words.

Document:
%s`
)

// Summarizer 医疗文档摘要
type Summarizer struct {
	chatModel ecomodel.ChatModel
}

// NewSummarizer 创建摘要器
func NewSummarizer(chatModel ecomodel.ChatModel) *Summarizer {
	return &Summarizer{chatModel: chatModel}
}

// Summarize 生成文档摘要
// 过短的文本直接返回提示语，不调用模型
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if len(text) < minSummarizableLength {
		return summaryTooShortReply, nil
	}
	if s.chatModel == nil {
		return "", fmt.Errorf("chat model is not configured")
	}

	if len(text) > maxSummarizeInput {
		text = text[:maxSummarizeInput]
	}

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		{Role: schema.User, Content: fmt.Sprintf(summarizePrompt, text)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to summarize document: %w", err)
	}

	return "📄 Summary:\n\n" + strings.TrimSpace(resp.Content), nil
}
