package repository

import (
	"github.com/drdeuce/health-agent/internal/model"
	"gorm.io/gorm"
)

// KnowledgeRepository 参考文档元数据访问
// 文档正文分块后存入 Elasticsearch，数据库只保存元数据
type KnowledgeRepository struct {
	db *gorm.DB
}

// NewKnowledgeRepository 创建知识库仓库
func NewKnowledgeRepository(db *gorm.DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

// CreateDocument 创建文档记录
func (r *KnowledgeRepository) CreateDocument(doc *model.KnowledgeDocument) error {
	return r.db.Create(doc).Error
}

// GetDocumentByID 获取文档记录
func (r *KnowledgeRepository) GetDocumentByID(id string) (*model.KnowledgeDocument, error) {
	var doc model.KnowledgeDocument
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments 列出文档记录，userID 为空时不过滤
func (r *KnowledgeRepository) ListDocuments(userID string, offset, limit int) ([]*model.KnowledgeDocument, error) {
	var docs []*model.KnowledgeDocument
	query := r.db.Order("created_at DESC").Offset(offset).Limit(limit)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Find(&docs).Error
	return docs, err
}

// UpdateDocument 更新文档记录
func (r *KnowledgeRepository) UpdateDocument(doc *model.KnowledgeDocument) error {
	return r.db.Save(doc).Error
}

// DeleteDocument 删除文档记录
func (r *KnowledgeRepository) DeleteDocument(id string) error {
	return r.db.Delete(&model.KnowledgeDocument{}, "id = ?", id).Error
}

// MarkIndexed 标记文档已入库
func (r *KnowledgeRepository) MarkIndexed(id string, chunkCount int) error {
	return r.db.Model(&model.KnowledgeDocument{}).Where("id = ?", id).
		Updates(map[string]any{"status": "indexed", "chunk_count": chunkCount, "error": ""}).Error
}

// MarkFailed 标记文档入库失败
func (r *KnowledgeRepository) MarkFailed(id string, reason string) error {
	return r.db.Model(&model.KnowledgeDocument{}).Where("id = ?", id).
		Updates(map[string]any{"status": "failed", "error": reason}).Error
}
