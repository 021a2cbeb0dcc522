package handler

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/processor"
	"resume-parser-go/internal/storage"
	"resume-parser-go/internal/tracing"
	"resume-parser-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ValidationError 客户端输入错误，对应 400
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ResumeHandler 简历上传解析接口
type ResumeHandler struct {
	cfg     *config.Config
	uploads *storage.UploadDir
	parser  processor.Parser
}

// NewResumeHandler 创建简历处理器
func NewResumeHandler(cfg *config.Config, uploads *storage.UploadDir, parser processor.Parser) *ResumeHandler {
	return &ResumeHandler{
		cfg:     cfg,
		uploads: uploads,
		parser:  parser,
	}
}

// ParseResume 接收 multipart 上传的简历，同步解析后返回结果
// 上传的文件无论成功失败都会被删除
func (h *ResumeHandler) ParseResume(ctx context.Context, c *app.RequestContext) {
	span := trace.SpanFromContext(ctx)
	log := logger.Ctx(ctx)
	start := time.Now()

	field := h.cfg.Upload.FormField
	if field == "" {
		field = constants.DefaultFormField
	}

	fh, err := c.FormFile(field)
	if err != nil {
		h.fail(c, span, &ValidationError{Message: constants.MsgNoFilePart}, nil)
		return
	}
	filename := strings.TrimSpace(fh.Filename)
	if filename == "" || storage.SecureFilename(filename) == "" {
		h.fail(c, span, &ValidationError{Message: constants.MsgNoSelectedFile}, nil)
		return
	}
	if !h.cfg.IsExtensionAllowed(storage.Extension(filename)) {
		h.fail(c, span, &ValidationError{Message: constants.MsgFileNotAllowed}, nil)
		return
	}

	span.SetAttributes(
		attribute.String("file.name", tracing.SafeFilename(filename)),
		attribute.Int64("file.size", fh.Size),
	)

	saved, err := h.uploads.Save(fh)
	if err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("保存上传文件失败")
		tracing.RecordError(span, err, tracing.ErrorTypeStorage)
		c.JSON(consts.StatusInternalServerError, types.ParseResponse{Success: false, Error: constants.MsgSaveFailed})
		return
	}
	defer func() {
		if err := h.uploads.Remove(saved); err != nil {
			log.Warn().Err(err).Str("dir", saved.Dir).Msg("清理上传文件失败")
		}
	}()

	result, err := h.parser.ParseFile(ctx, saved.Path, saved.MD5)
	if err != nil {
		log.Error().Err(err).
			Str("filename", saved.Name).
			Str("md5", saved.MD5).
			Dur("duration", time.Since(start)).
			Msg("简历解析失败")
		h.fail(c, span, err, saved)
		return
	}

	log.Info().
		Str("filename", saved.Name).
		Str("md5", saved.MD5).
		Int64("size", saved.Size).
		Dur("duration", time.Since(start)).
		Msg("简历解析完成")

	c.JSON(consts.StatusOK, types.ParseResponse{
		Success: true,
		Message: constants.MsgParseSuccess,
		Data:    result,
	})
}

// fail 按错误类型写出响应
// 未归类的错误原样返回错误信息，其中的服务器本地路径会被隐藏
func (h *ResumeHandler) fail(c *app.RequestContext, span trace.Span, err error, saved *storage.SavedFile) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.reject(c, span, err, consts.StatusBadRequest, validationErr.Message)
	case errors.Is(err, processor.ErrUnsupportedFile):
		h.reject(c, span, err, consts.StatusUnsupportedMediaType, constants.MsgUnsupportedFile)
	case errors.Is(err, processor.ErrExtractTextFailed):
		tracing.RecordHTTPError(span, err, consts.StatusInternalServerError)
		c.JSON(consts.StatusInternalServerError, types.ParseResponse{Success: false, Error: constants.MsgExtractFailed})
	default:
		tracing.RecordHTTPError(span, err, consts.StatusInternalServerError)
		c.JSON(consts.StatusInternalServerError, types.ParseResponse{Success: false, Error: h.publicMessage(err, saved)})
	}
}

// reject 客户端错误，按校验错误记录到 span
func (h *ResumeHandler) reject(c *app.RequestContext, span trace.Span, err error, status int, message string) {
	tracing.RecordError(span, err, tracing.ErrorTypeValidation, attribute.Int("http.status_code", status))
	c.JSON(status, types.ParseResponse{Success: false, Error: message})
}

// publicMessage 把错误信息中的上传路径替换为文件名
func (h *ResumeHandler) publicMessage(err error, saved *storage.SavedFile) string {
	msg := err.Error()
	if saved != nil {
		msg = strings.ReplaceAll(msg, saved.Path, saved.Name)
		msg = strings.ReplaceAll(msg, saved.Dir, "")
	}
	if h.uploads != nil && h.uploads.Root() != "" {
		msg = strings.ReplaceAll(msg, h.uploads.Root()+string(filepath.Separator), "")
	}
	if strings.TrimSpace(msg) == "" {
		return constants.MsgInternalFailure
	}
	return msg
}

// Health 健康检查
func Health(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, types.HealthResponse{Status: "OK"})
}
