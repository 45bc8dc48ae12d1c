package model

import "time"

// KnowledgeDocument 已入库的参考文档元数据
// 文档内容分块后进入 Elasticsearch，这里只保留元数据
type KnowledgeDocument struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"index;size:36" json:"user_id"`
	FileName   string    `gorm:"size:255" json:"file_name"`
	FileType   string    `gorm:"size:20" json:"file_type"` // pdf, docx
	Status     string    `gorm:"index;size:20;default:pending" json:"status"` // pending, indexed, failed
	ChunkCount int       `gorm:"default:0" json:"chunk_count"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
