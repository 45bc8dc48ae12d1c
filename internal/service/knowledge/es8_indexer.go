// ES8 索引集成，基于 eino-ext es8.NewIndexer
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/cloudwego/eino-ext/components/indexer/es8"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/drdeuce/health-agent/internal/config"
)

// ChunkIndexName 分块索引名
func ChunkIndexName(cfg *config.Config) string {
	return cfg.Elastic.IndexPrefix + "_chunks"
}

// ES8Indexer 索引器接口，便于在测试中替换
type ES8Indexer interface {
	Store(ctx context.Context, docs []*schema.Document) ([]string, error)
	EnsureIndex(ctx context.Context) error
}

// NewES8Indexer 创建 ES8 索引器
func NewES8Indexer(ctx context.Context, cfg *config.Config, embedder embedding.Embedder) (ES8Indexer, error) {
	client, err := NewESClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ES client: %w", err)
	}

	indexName := ChunkIndexName(cfg)

	indexer, err := es8.NewIndexer(ctx, &es8.IndexerConfig{
		Client:    client,
		Index:     indexName,
		BatchSize: 10,
		Embedding: embedder,
		DocumentToFields: func(ctx context.Context, doc *schema.Document) (map[string]es8.FieldValue, error) {
			return documentToESFields(doc), nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ES8 indexer: %w", err)
	}

	return &es8IndexerWrapper{
		indexer:   indexer,
		indexName: indexName,
		client:    client,
		cfg:       cfg,
	}, nil
}

type es8IndexerWrapper struct {
	indexer   *es8.Indexer
	indexName string
	client    *elasticsearch.Client
	cfg       *config.Config
}

func (w *es8IndexerWrapper) Store(ctx context.Context, docs []*schema.Document) ([]string, error) {
	return w.indexer.Store(ctx, docs)
}

// EnsureIndex 确保索引存在，es8.Indexer 本身不包含索引管理
func (w *es8IndexerWrapper) EnsureIndex(ctx context.Context) error {
	return ensureESIndex(ctx, w.client, w.indexName, w.cfg.AI.Embedding.Dimensions)
}

// documentToESFields 将 eino Document 转换为 ES 字段
// content 字段向量化后写入 content_vector
func documentToESFields(doc *schema.Document) map[string]es8.FieldValue {
	fields := make(map[string]es8.FieldValue)

	fields["content"] = es8.FieldValue{
		Value:    doc.Content,
		EmbedKey: "content_vector",
	}

	if doc.MetaData != nil {
		for k, v := range doc.MetaData {
			fields[k] = es8.FieldValue{Value: v}
		}
	}

	return fields
}

// NewESClient 创建 ES8 客户端
func NewESClient(cfg *config.Config) (*elasticsearch.Client, error) {
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Elastic.Host},
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
}

// ensureESIndex 索引不存在时按向量映射创建
func ensureESIndex(ctx context.Context, client *elasticsearch.Client, indexName string, dimensions int) error {
	res, err := client.Indices.Exists([]string{indexName})
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	if dimensions == 0 {
		dimensions = 1536
	}

	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"content": map[string]interface{}{
					"type": "text",
				},
				"content_vector": map[string]interface{}{
					"type":       "dense_vector",
					"dims":       dimensions,
					"index":      true,
					"similarity": "cosine",
				},
				"document_id": map[string]interface{}{
					"type": "keyword",
				},
				"chunk_index": map[string]interface{}{
					"type": "integer",
				},
				"user_id": map[string]interface{}{
					"type": "keyword",
				},
				"file_name": map[string]interface{}{
					"type": "keyword",
				},
			},
		},
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
	}

	mappingData, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	req := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  bytes.NewReader(mappingData),
	}

	res, err = req.Do(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to create index: %s", res.String())
	}

	log.Printf("Index %s created with %d dimensions", indexName, dimensions)
	return nil
}
