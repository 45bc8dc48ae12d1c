// Package knowledge 提供参考文档入库流水线
// 解析、分块、向量化与索引直接使用 eino/eino-ext 组件，避免冗余封装
package knowledge

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/docx"
	"github.com/cloudwego/eino-ext/components/document/parser/html"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	einoparser "github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/drdeuce/health-agent/internal/config"
	"github.com/drdeuce/health-agent/internal/model"
	"github.com/drdeuce/health-agent/internal/repository"
)

// Service 文档入库服务
type Service struct {
	repo     *repository.Repositories
	cfg      *config.Config
	embedder embedding.Embedder
}

// NewService 创建文档入库服务
func NewService(repo *repository.Repositories, cfg *config.Config, embedder embedding.Embedder) *Service {
	return &Service{
		repo:     repo,
		cfg:      cfg,
		embedder: embedder,
	}
}

// IngestRequest 入库请求
type IngestRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	FilePath string `json:"file_path" binding:"required"`
	FileName string `json:"file_name"`
}

// IngestResult 入库结果
type IngestResult struct {
	DocumentID string        `json:"document_id"`
	Success    bool          `json:"success"`
	ParsedDocs int           `json:"parsed_docs"`
	Chunks     int           `json:"chunks"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
}

// Ingest 文档入库的完整流程：登记、解析、分块、索引
// 失败时文档记录标记为 failed 并保留原因
func (s *Service) Ingest(ctx context.Context, req *IngestRequest) (*IngestResult, error) {
	startTime := time.Now()

	doc := &model.KnowledgeDocument{
		ID:       uuid.New().String(),
		UserID:   req.UserID,
		FileName: req.FileName,
		FileType: fileExt(req.FilePath),
		Status:   "pending",
	}
	if doc.FileName == "" {
		doc.FileName = req.FilePath
	}
	if err := s.repo.Knowledge.CreateDocument(doc); err != nil {
		return nil, fmt.Errorf("failed to register document: %w", err)
	}
	result := &IngestResult{DocumentID: doc.ID}

	fail := func(stage string, err error) (*IngestResult, error) {
		result.Error = fmt.Sprintf("%s: %v", stage, err)
		if markErr := s.repo.Knowledge.MarkFailed(doc.ID, result.Error); markErr != nil {
			log.Printf("Warning: failed to update document status: %v", markErr)
		}
		return result, fmt.Errorf("%s: %w", stage, err)
	}

	parsedDocs, err := s.parseFile(ctx, req.FilePath, doc)
	if err != nil {
		return fail("failed to parse document", err)
	}
	result.ParsedDocs = len(parsedDocs)
	if result.ParsedDocs == 0 {
		return fail("failed to parse document", fmt.Errorf("no content parsed"))
	}

	chunks, err := s.splitDocuments(ctx, parsedDocs)
	if err != nil {
		return fail("failed to split document", err)
	}
	result.Chunks = len(chunks)

	if err := s.indexChunks(ctx, chunks); err != nil {
		return fail("failed to index document", err)
	}

	if err := s.repo.Knowledge.MarkIndexed(doc.ID, len(chunks)); err != nil {
		log.Printf("Warning: failed to update document status: %v", err)
	}

	result.Duration = time.Since(startTime)
	result.Success = true
	return result, nil
}

// ListDocuments 列出已登记的文档
func (s *Service) ListDocuments(userID string, offset, limit int) ([]*model.KnowledgeDocument, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Knowledge.ListDocuments(userID, offset, limit)
}

// DeleteDocument 删除文档记录
func (s *Service) DeleteDocument(id string) error {
	return s.repo.Knowledge.DeleteDocument(id)
}

// ExtractText 解析文件并拼接为纯文本，供摘要等只读场景使用
func (s *Service) ExtractText(ctx context.Context, filePath string) (string, error) {
	fileParser, err := newParser(ctx, filePath)
	if err != nil {
		return "", err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	docs, err := fileParser.Parse(ctx, file)
	if err != nil {
		return "", fmt.Errorf("parser failed: %w", err)
	}

	var sb strings.Builder
	for _, d := range docs {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(d.Content)
	}
	return sb.String(), nil
}

// parseFile 解析文件并附加文档元数据
func (s *Service) parseFile(ctx context.Context, filePath string, doc *model.KnowledgeDocument) ([]*schema.Document, error) {
	fileParser, err := newParser(ctx, filePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	docs, err := fileParser.Parse(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("parser failed: %w", err)
	}

	for _, d := range docs {
		if d.MetaData == nil {
			d.MetaData = make(map[string]any)
		}
		d.MetaData["document_id"] = doc.ID
		d.MetaData["file_name"] = doc.FileName
		d.MetaData["user_id"] = doc.UserID
	}

	return docs, nil
}

// newParser 按扩展名创建解析器
func newParser(ctx context.Context, filePath string) (einoparser.Parser, error) {
	switch ext := fileExt(filePath); ext {
	case ".pdf":
		return pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	case ".docx":
		return docx.NewDocxParser(ctx, &docx.Config{
			ToSections:      false,
			IncludeComments: false,
			IncludeHeaders:  true,
			IncludeFooters:  false,
			IncludeTables:   true,
		})
	case ".html", ".htm":
		// 只提取正文内容
		bodySelector := "body"
		return html.NewParser(ctx, &html.Config{
			Selector: &bodySelector,
		})
	case ".txt", ".md":
		return &textParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// textParser 纯文本解析器
type textParser struct{}

func (p *textParser) Parse(_ context.Context, reader io.Reader, opts ...einoparser.Option) ([]*schema.Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}

	text := string(content)
	if text == "" {
		return []*schema.Document{}, nil
	}

	return []*schema.Document{
		{
			Content:  text,
			MetaData: make(map[string]any),
		},
	}, nil
}

// splitDocuments 递归分块，块内保留来源元数据
func (s *Service) splitDocuments(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error) {
	splitter, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   512,
		OverlapSize: 50,
		Separators:  []string{"\n\n", "\n", ". ", "。", "? ", "？", "! ", "！", ", ", "，", " ", ""},
		KeepType:    recursive.KeepTypeNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create splitter: %w", err)
	}

	splitDocs, err := splitter.Transform(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("splitter failed: %w", err)
	}

	for i, splitDoc := range splitDocs {
		if splitDoc.ID == "" {
			splitDoc.ID = uuid.New().String()
		}
		if splitDoc.MetaData == nil {
			splitDoc.MetaData = make(map[string]any)
		}
		splitDoc.MetaData["chunk_index"] = i
	}

	return splitDocs, nil
}

// indexChunks 将分块写入 Elasticsearch
func (s *Service) indexChunks(ctx context.Context, chunks []*schema.Document) error {
	indexer, err := NewES8Indexer(ctx, s.cfg, s.embedder)
	if err != nil {
		return fmt.Errorf("failed to create ES8 indexer: %w", err)
	}

	if err := indexer.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("failed to ensure index: %w", err)
	}

	ids, err := indexer.Store(ctx, chunks)
	if err != nil {
		return fmt.Errorf("failed to store documents: %w", err)
	}

	log.Printf("Indexed %d chunks to ES", len(ids))
	return nil
}

func fileExt(filePath string) string {
	for i := len(filePath) - 1; i >= 0; i-- {
		if filePath[i] == '.' {
			return filePath[i:]
		}
	}
	return ""
}
