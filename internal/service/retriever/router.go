// Package retriever 提供健康知识库检索
// 多数据源并发检索后用 RRF 融合，对话侧通过 Fetcher 以尽力而为方式取上下文
package retriever

import (
	"context"
	"sort"
	"sync"

	"github.com/cloudwego/eino/components/retriever"
	"github.com/cloudwego/eino/schema"
)

// ========== 融合检索器 ==========

// Router 多源融合检索器
// 并发查询全部已注册数据源，RRF 融合后按分数排序返回
type Router struct {
	mu      sync.RWMutex
	sources map[string]retriever.Retriever
	rrfK    int
}

// NewRouter 创建融合检索器，k 为 RRF 平滑常数
func NewRouter(k int) *Router {
	if k <= 0 {
		k = 60
	}
	return &Router{
		sources: make(map[string]retriever.Retriever),
		rrfK:    k,
	}
}

// Add 注册数据源
func (r *Router) Add(name string, source retriever.Retriever) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = source
	return r
}

// Retrieve 并发查询所有数据源并融合结果
// 只要有一个数据源成功就返回融合结果，全部失败时返回第一个错误
func (r *Router) Retrieve(ctx context.Context, query string, opts ...retriever.Option) ([]*schema.Document, error) {
	r.mu.RLock()
	sources := make(map[string]retriever.Retriever, len(r.sources))
	for name, source := range r.sources {
		sources[name] = source
	}
	r.mu.RUnlock()

	if len(sources) == 0 {
		return []*schema.Document{}, nil
	}

	type result struct {
		docs []*schema.Document
		err  error
	}
	results := make(chan result, len(sources))

	for _, source := range sources {
		go func(source retriever.Retriever) {
			docs, err := source.Retrieve(ctx, query, opts...)
			results <- result{docs: docs, err: err}
		}(source)
	}

	ranked := make([][]*schema.Document, 0, len(sources))
	var firstErr error
	for i := 0; i < len(sources); i++ {
		res := <-results
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		ranked = append(ranked, res.docs)
	}

	if len(ranked) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return []*schema.Document{}, nil
	}

	return rrfFuse(ranked, r.rrfK), nil
}

// rrfFuse RRF (Reciprocal Rank Fusion) 融合
// 每份排名贡献 1/(k+rank+1)，同一文档跨数据源累加
func rrfFuse(ranked [][]*schema.Document, k int) []*schema.Document {
	type docScore struct {
		doc   *schema.Document
		score float64
	}
	scores := make(map[string]*docScore)
	order := make([]string, 0)

	for _, docs := range ranked {
		for rank, doc := range docs {
			contribution := 1.0 / float64(k+rank+1)
			if existing, found := scores[doc.ID]; found {
				existing.score += contribution
			} else {
				scores[doc.ID] = &docScore{doc: doc, score: contribution}
				order = append(order, doc.ID)
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]].score > scores[order[j]].score
	})

	fused := make([]*schema.Document, 0, len(order))
	for _, id := range order {
		fused = append(fused, scores[id].doc)
	}
	return fused
}
