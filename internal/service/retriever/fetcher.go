package retriever

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/retriever"
)

// Fetcher 对话侧的尽力而为上下文获取器
// 检索失败或超时只降级为空上下文，从不向调用方返回错误
type Fetcher struct {
	source  retriever.Retriever
	timeout time.Duration
	topK    int
}

// NewFetcher 创建上下文获取器，source 可为 nil（检索未配置时直接降级）
func NewFetcher(source retriever.Retriever, timeout time.Duration, topK int) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if topK <= 0 {
		topK = 1
	}
	return &Fetcher{source: source, timeout: timeout, topK: topK}
}

// Fetch 检索与查询相关的知识片段并拼成一段上下文文本
// 任何失败（含超时与零命中）都返回空串
func (f *Fetcher) Fetch(ctx context.Context, query string) string {
	if f == nil || f.source == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	docs, err := f.source.Retrieve(ctx, query)
	if err != nil {
		log.Printf("Warning: context retrieval failed, continuing without context: %v", err)
		return ""
	}

	if len(docs) > f.topK {
		docs = docs[:f.topK]
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		content := strings.TrimSpace(doc.Content)
		if content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, "\n\n")
}
