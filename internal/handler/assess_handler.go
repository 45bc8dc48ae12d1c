package handler

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drdeuce/health-agent/internal/model"
	"github.com/drdeuce/health-agent/internal/service"
	"github.com/drdeuce/health-agent/internal/service/assess"
)

// AssessmentHandler 健康评估处理器
// 每个端点执行对应评估并把结果写入用户的健康记录，
// 后续对话轮的系统提示词即可引用这些结果
type AssessmentHandler struct {
	svc *service.Services
}

// NewAssessmentHandler 创建评估处理器
func NewAssessmentHandler(svc *service.Services) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

// save 写入健康记录并返回结果
func (h *AssessmentHandler) save(c *gin.Context, userID string, input map[string]any, result model.RecordResult) {
	h.svc.Records.Put(userID, &model.HealthRecord{
		Kind:      result.RecordKind(),
		Input:     input,
		Result:    result,
		Timestamp: time.Now(),
	})
	success(c, result)
}

// VitalSigns 生命体征监测
// POST /assess/vital-signs
func (h *AssessmentHandler) VitalSigns(c *gin.Context) {
	var req struct {
		UserID   string         `json:"user_id"`
		Readings map[string]any `json:"readings" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	h.save(c, req.UserID, req.Readings, assess.MonitorVitalSigns(req.Readings))
}

// HealthScore 健康评分
// POST /assess/health-score
func (h *AssessmentHandler) HealthScore(c *gin.Context) {
	var req struct {
		UserID string         `json:"user_id"`
		Data   map[string]any `json:"data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	h.save(c, req.UserID, req.Data, assess.ScoreHealth(req.Data))
}

// KidneyFunction 肾功能分析
// POST /assess/kidney-function
func (h *AssessmentHandler) KidneyFunction(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		assess.KidneyInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	h.save(c, req.UserID, nil, assess.AnalyzeKidneyFunction(req.KidneyInput))
}

// LipidProfile 血脂分析
// POST /assess/lipid-profile
func (h *AssessmentHandler) LipidProfile(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		assess.LipidInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	h.save(c, req.UserID, nil, assess.AnalyzeLipidProfile(req.LipidInput))
}

// LiverFunction 肝功能评估
// POST /assess/liver-function
func (h *AssessmentHandler) LiverFunction(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		assess.LiverInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	h.save(c, req.UserID, nil, assess.AnalyzeLiverFunction(req.LiverInput))
}

// ExtractLiverValues 从化验单抽取肝功能指标
// POST /assess/liver-function/extract
// 支持 multipart 上传化验单文件，或 JSON 直接提交报告文本
func (h *AssessmentHandler) ExtractLiverValues(c *gin.Context) {
	var reportText string

	if isMultipart(c) {
		path, _, err := saveUpload(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		defer os.Remove(path)

		reportText, err = h.svc.Knowledge.ExtractText(c.Request.Context(), path)
		if err != nil {
			badRequest(c, err)
			return
		}
	} else {
		var req struct {
			ReportText string `json:"report_text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		reportText = req.ReportText
	}

	values, err := h.svc.Extractor.ExtractLiverValues(c.Request.Context(), reportText)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"values": values})
}

// ChronicRisk 慢病风险预测
// POST /assess/chronic-risk
func (h *AssessmentHandler) ChronicRisk(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		assess.ChronicRiskInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	h.save(c, req.UserID, nil, assess.PredictChronicRisk(req.ChronicRiskInput))
}

// MentalHealth 心理健康评估
// POST /assess/mental-health
func (h *AssessmentHandler) MentalHealth(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		assess.MentalHealthInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.MentalHealthInput.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	h.save(c, req.UserID, nil, assess.AssessMentalHealth(req.MentalHealthInput))
}

// Reproductive 生殖健康评估
// POST /assess/reproductive
func (h *AssessmentHandler) Reproductive(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		assess.ReproductiveInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	result, err := assess.AssessReproductive(req.ReproductiveInput, time.Now())
	if err != nil {
		badRequest(c, err)
		return
	}
	h.save(c, req.UserID, nil, result)
}

// MentalHealthCountries 已收录危机资源的国家列表
// GET /assess/mental-health/countries
func (h *AssessmentHandler) MentalHealthCountries(c *gin.Context) {
	success(c, gin.H{"countries": assess.SupportedCountries()})
}

// Lifestyle 生活习惯打卡并生成周度汇总
// POST /assess/lifestyle
func (h *AssessmentHandler) Lifestyle(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		assess.LifestyleInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	history := h.svc.Records.History(req.UserID, model.KindLifestyle)
	snapshot := assess.SummarizeLifestyle(history, req.Habits, time.Now())

	input := make(map[string]any, len(req.Habits))
	for k, v := range req.Habits {
		input[k] = v
	}
	h.save(c, req.UserID, input, snapshot)
}

// WeeklyDigest 记录本次体征并生成周度摘要
// POST /assess/weekly-digest
func (h *AssessmentHandler) WeeklyDigest(c *gin.Context) {
	var req struct {
		UserID     string         `json:"user_id"`
		VitalSigns map[string]any `json:"vital_signs" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == "" {
		req.UserID = getUserID(c)
	}

	// 本次体征先按体征记录入库，计入本周趋势
	h.svc.Records.Put(req.UserID, &model.HealthRecord{
		Kind:      model.KindVitalSigns,
		Input:     req.VitalSigns,
		Result:    assess.MonitorVitalSigns(req.VitalSigns),
		Timestamp: time.Now(),
	})

	history := h.svc.Records.History(req.UserID, model.KindVitalSigns)
	digest := assess.SummarizeWeeklyVitals(history, time.Now())
	h.svc.Records.Put(req.UserID, &model.HealthRecord{
		Kind:      digest.RecordKind(),
		Result:    digest,
		Timestamp: time.Now(),
	})

	success(c, gin.H{
		"current_vitals": req.VitalSigns,
		"weekly_digest":  digest,
		"records_logged": len(history),
	})
}

// Progress 进度跟踪，基于近 30 天生命体征历史
// GET /assess/progress
func (h *AssessmentHandler) Progress(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = getUserID(c)
	}

	history := h.svc.Records.History(userID, model.KindVitalSigns)
	snapshot := assess.SummarizeProgress(history, time.Now())

	h.save(c, userID, nil, snapshot)
}
