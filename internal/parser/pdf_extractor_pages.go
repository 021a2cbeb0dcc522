package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// PagedPDFExtractor 逐页提取文本后拼接，用作 Eino 的备选方案
// 单页失败时跳过该页继续
type PagedPDFExtractor struct {
	logger zerolog.Logger
}

// PagedPDFOption 配置选项
type PagedPDFOption func(*PagedPDFExtractor)

// WithPagedLogger 配置自定义日志记录器
func WithPagedLogger(l zerolog.Logger) PagedPDFOption {
	return func(e *PagedPDFExtractor) {
		e.logger = l
	}
}

var _ TextExtractor = (*PagedPDFExtractor)(nil)

// NewPagedPDFExtractor 创建逐页提取器
func NewPagedPDFExtractor(options ...PagedPDFOption) *PagedPDFExtractor {
	e := &PagedPDFExtractor{logger: componentLogger("pdf_pages")}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *PagedPDFExtractor) Name() string { return "pages" }

// ExtractFromFile 从PDF文件逐页提取文本
func (e *PagedPDFExtractor) ExtractFromFile(ctx context.Context, filePath string) (text string, metadata map[string]interface{}, err error) {
	defer recoverAsError("pages", &err)

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open PDF file %s: %w", filePath, err)
	}
	defer f.Close()

	return e.extract(ctx, r, filePath)
}

// ExtractTextFromBytes 从内存中的PDF逐页提取文本
func (e *PagedPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (text string, metadata map[string]interface{}, err error) {
	defer recoverAsError("pages", &err)

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read PDF %s: %w", uri, err)
	}
	return e.extract(ctx, r, uri)
}

func (e *PagedPDFExtractor) extract(ctx context.Context, r *pdf.Reader, uri string) (string, map[string]interface{}, error) {
	startTime := time.Now()
	numPages := r.NumPage()

	var sb strings.Builder
	skipped := 0
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			skipped++
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug().Err(err).Str("uri", uri).Int("page", i).Msg("单页文本提取失败，跳过")
			skipped++
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	text := sb.String()
	metadata := map[string]interface{}{
		"source_file_path":       uri,
		"extractor":              e.Name(),
		"page_count":             numPages,
		"skipped_pages":          skipped,
		"text_length":            len(text),
		"processing_duration_ms": time.Since(startTime).Milliseconds(),
	}
	return text, metadata, nil
}
