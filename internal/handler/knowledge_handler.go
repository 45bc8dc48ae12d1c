package handler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drdeuce/health-agent/internal/service"
	"github.com/drdeuce/health-agent/internal/service/knowledge"
)

// KnowledgeHandler 参考文档处理器
type KnowledgeHandler struct {
	svc *service.Services
}

// NewKnowledgeHandler 创建文档处理器
func NewKnowledgeHandler(svc *service.Services) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

// saveUpload 将上传文件保存到临时目录，返回本地路径与原始文件名
// 调用方负责清理临时文件
func saveUpload(c *gin.Context) (path, name string, err error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", "", err
	}
	name = filepath.Base(fileHeader.Filename)
	path = filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(name))
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		return "", "", err
	}
	return path, name, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// Ingest 文档入库
// POST /documents
// 支持 multipart 文件上传，或 JSON 指定服务器本地路径
func (h *KnowledgeHandler) Ingest(c *gin.Context) {
	var req knowledge.IngestRequest

	if isMultipart(c) {
		path, name, err := saveUpload(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		defer os.Remove(path)

		req.FilePath = path
		req.FileName = name
		req.UserID = c.PostForm("user_id")
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	result, err := h.svc.Knowledge.Ingest(c.Request.Context(), &req)
	if err != nil {
		// result 带有失败阶段信息，随错误一起返回
		c.JSON(500, Response{Code: -1, Message: err.Error(), Data: result})
		return
	}
	created(c, result)
}

// List 列出文档
// GET /documents
func (h *KnowledgeHandler) List(c *gin.Context) {
	page, size := getPagination(c)
	userID := c.Query("user_id")
	if userID == "" {
		userID = getUserID(c)
	}

	docs, err := h.svc.Knowledge.ListDocuments(userID, (page-1)*size, size)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"items": docs, "page": page, "size": size})
}

// Delete 删除文档记录
// DELETE /documents/:id
func (h *KnowledgeHandler) Delete(c *gin.Context) {
	if err := h.svc.Knowledge.DeleteDocument(c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"message": "deleted"})
}

// Summarize 医疗文档摘要
// POST /documents/summarize
// 支持 multipart 文件上传（先解析为文本），或 JSON 直接提交文本
func (h *KnowledgeHandler) Summarize(c *gin.Context) {
	var text string

	if isMultipart(c) {
		path, _, err := saveUpload(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		defer os.Remove(path)

		text, err = h.svc.Knowledge.ExtractText(c.Request.Context(), path)
		if err != nil {
			badRequest(c, err)
			return
		}
	} else {
		var req struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		text = req.Text
	}

	summary, err := h.svc.Summarizer.Summarize(c.Request.Context(), text)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"summary": summary})
}
