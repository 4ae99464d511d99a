// Package handler 实现筛选服务的HTTP处理器
package handler

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"resume-screening-go/internal/config"
	"resume-screening-go/internal/constants"
	"resume-screening-go/internal/logger"
	"resume-screening-go/internal/parser"
	"resume-screening-go/internal/screening"
	"resume-screening-go/internal/similarity"
	"resume-screening-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gofrs/uuid/v5"
)

// ScreeningHandler 简历筛选处理器，负责协调请求校验、文本提取和打分
type ScreeningHandler struct {
	cfg       *config.Config
	extractor parser.PDFExtractor
	screener  *screening.Screener
	calc      similarity.Calculator

	// 就绪探测成功后缓存结果；失败不缓存，后续探测会重试
	readyMu sync.Mutex
	ready   bool
}

// NewScreeningHandler 创建一个新的简历筛选处理器
func NewScreeningHandler(
	cfg *config.Config,
	extractor parser.PDFExtractor,
	screener *screening.Screener,
	calc similarity.Calculator,
) *ScreeningHandler {
	return &ScreeningHandler{
		cfg:       cfg,
		extractor: extractor,
		screener:  screener,
		calc:      calc,
	}
}

// HandleRank 处理批量简历筛选请求
// 表单字段：job_description/skills/experience/education + resumes文件
func (h *ScreeningHandler) HandleRank(ctx context.Context, c *app.RequestContext) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "解析multipart表单失败")
		return
	}

	job, err := validateJobForm(form)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	files := form.File["resumes"]
	if err := validateFiles(files, h.maxFiles()); err != nil {
		badRequest(c, err.Error())
		return
	}

	batchID := newBatchID()
	logger.Info().
		Str("batch_id", batchID).
		Int("files", len(files)).
		Msg("收到简历筛选请求")

	// 逐份提取文本；提取失败不影响其余简历
	var docs []types.ResumeDocument
	var failures []types.DocumentFailure

	for _, fh := range files {
		text, err := h.extractText(ctx, fh)
		if err != nil {
			logger.Error().
				Err(err).
				Str("filename", fh.Filename).
				Msg("简历文本提取失败")
			failures = append(failures, types.DocumentFailure{
				Filename: fh.Filename,
				Error:    err.Error(),
			})
			continue
		}
		docs = append(docs, types.ResumeDocument{Filename: fh.Filename, Text: text})
	}

	results, scoreFailures := h.screener.RankResumes(ctx, docs, job)
	failures = append(failures, scoreFailures...)

	if results == nil {
		results = []types.ResumeResult{}
	}

	logger.Info().
		Str("batch_id", batchID).
		Int("processed", len(results)).
		Int("failed", len(failures)).
		Msg("简历筛选完成")

	c.JSON(consts.StatusOK, types.RankResponse{
		Success:        true,
		BatchID:        batchID,
		TotalProcessed: len(results),
		TotalFailed:    len(failures),
		Results:        results,
		Errors:         failures,
	})
}

// HandleHealth 存活探针
func (h *ScreeningHandler) HandleHealth(_ context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "resume-screening",
	})
}

// HandleReady 就绪探针：验证相似度计算链路可用
// 后端暂时不可用时返回503，下一次探测会重新预热，直到成功为止
func (h *ScreeningHandler) HandleReady(ctx context.Context, c *app.RequestContext) {
	h.readyMu.Lock()
	if !h.ready {
		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := similarity.Warmup(probeCtx, h.calc)
		cancel()
		if err != nil {
			h.readyMu.Unlock()
			logger.Warn().Err(err).Msg("就绪探测失败")
			c.JSON(consts.StatusServiceUnavailable, map[string]interface{}{
				"status": "not_ready",
				"error":  err.Error(),
			})
			return
		}
		h.ready = true
	}
	h.readyMu.Unlock()

	c.JSON(consts.StatusOK, map[string]interface{}{
		"status":  "ready",
		"service": "resume-screening",
	})
}

// extractText 提取单个上传文件的文本并做最小长度校验
func (h *ScreeningHandler) extractText(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", screening.NewExtractError(fh.Filename, err.Error())
	}
	defer file.Close()

	text, err := h.extractor.ExtractTextFromReader(ctx, file, fh.Filename)
	if err != nil {
		return "", screening.NewExtractError(fh.Filename, err.Error())
	}

	if len(strings.TrimSpace(text)) < constants.MinUsableText {
		return "", screening.NewInsufficientTextError(fh.Filename)
	}

	return text, nil
}

func (h *ScreeningHandler) maxFiles() int {
	if h.cfg.Server.MaxFiles > 0 {
		return h.cfg.Server.MaxFiles
	}
	return constants.DefaultMaxFiles
}

// validateJobForm 校验并提取岗位要求字段
func validateJobForm(form *multipart.Form) (types.JobRequirement, error) {
	get := func(name string) string {
		if values, ok := form.Value[name]; ok && len(values) > 0 {
			return values[0]
		}
		return ""
	}

	fields := map[string]string{
		"job_description": get("job_description"),
		"skills":          get("skills"),
		"experience":      get("experience"),
		"education":       get("education"),
	}
	for _, name := range []string{"job_description", "skills", "experience", "education"} {
		if strings.TrimSpace(fields[name]) == "" {
			return types.JobRequirement{}, fmt.Errorf("缺少必填字段: %s", name)
		}
	}

	if len(fields["job_description"]) > constants.MaxJobDescriptionLen {
		return types.JobRequirement{}, fmt.Errorf("岗位描述过长 (最大%d字符)", constants.MaxJobDescriptionLen)
	}
	if len(fields["skills"]) > constants.MaxJobSkillsLen {
		return types.JobRequirement{}, fmt.Errorf("技能要求过长 (最大%d字符)", constants.MaxJobSkillsLen)
	}
	if len(fields["experience"]) > constants.MaxJobExperienceLen {
		return types.JobRequirement{}, fmt.Errorf("经验要求过长 (最大%d字符)", constants.MaxJobExperienceLen)
	}
	if len(fields["education"]) > constants.MaxJobEducationLen {
		return types.JobRequirement{}, fmt.Errorf("学历要求过长 (最大%d字符)", constants.MaxJobEducationLen)
	}

	return types.JobRequirement{
		Description: strings.TrimSpace(fields["job_description"]),
		Skills:      strings.TrimSpace(fields["skills"]),
		Experience:  strings.TrimSpace(fields["experience"]),
		Education:   strings.TrimSpace(fields["education"]),
	}, nil
}

// validateFiles 校验上传的简历文件：数量、文件名、扩展名和大小
func validateFiles(files []*multipart.FileHeader, maxFiles int) error {
	if len(files) == 0 {
		return fmt.Errorf("未提供简历文件")
	}
	if len(files) > maxFiles {
		return fmt.Errorf("文件数量超限 (最多%d份)", maxFiles)
	}

	for _, fh := range files {
		if fh.Filename == "" {
			return fmt.Errorf("存在缺少文件名的文件")
		}
		if !allowedFile(fh.Filename) {
			return fmt.Errorf("文件 %s 类型不支持, 仅接受PDF", fh.Filename)
		}
		if fh.Size > constants.MaxFileSize {
			return fmt.Errorf("文件 %s 过大 (最大%dMB)", fh.Filename, constants.MaxFileSize/(1024*1024))
		}
	}

	return nil
}

// allowedFile 检查文件扩展名是否为pdf
func allowedFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return strings.ToLower(filename[idx+1:]) == "pdf"
}

// newBatchID 生成批次ID，UUID生成失败时退化为时间戳
func newBatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("batch-%d", time.Now().UnixNano())
	}
	return id.String()
}

func badRequest(c *app.RequestContext, message string) {
	logger.Warn().Str("reason", message).Msg("请求校验失败")
	c.JSON(consts.StatusBadRequest, types.ErrorResponse{
		Error:   "Bad Request",
		Message: message,
	})
}
