package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// MetadataMode Tika元数据提取模式
type MetadataMode string

const (
	MetadataNone    MetadataMode = "none"
	MetadataMinimal MetadataMode = "minimal"
	MetadataFull    MetadataMode = "full"
)

// TikaPDFExtractor 基于 Apache Tika 服务器的PDF提取器
type TikaPDFExtractor struct {
	// Tika服务器地址，例如 http://localhost:9998
	ServerURL string
	Client    *http.Client

	metadataMode       MetadataMode
	extractAnnotations bool
	logger             zerolog.Logger
}

// TikaOption 配置选项
type TikaOption func(*TikaPDFExtractor)

// WithMetadataMode 配置元数据提取模式，未知值按 none 处理
func WithMetadataMode(mode string) TikaOption {
	return func(e *TikaPDFExtractor) {
		switch m := MetadataMode(strings.ToLower(mode)); m {
		case MetadataMinimal, MetadataFull:
			e.metadataMode = m
		default:
			e.metadataMode = MetadataNone
		}
	}
}

// WithAnnotations 配置是否提取PDF链接注释文本
func WithAnnotations(extract bool) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.extractAnnotations = extract
	}
}

// WithTikaLogger 配置自定义日志记录器
func WithTikaLogger(l zerolog.Logger) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.logger = l
	}
}

// WithTimeout 配置HTTP客户端超时时间
func WithTimeout(timeout time.Duration) TikaOption {
	return func(e *TikaPDFExtractor) {
		if timeout > 0 {
			e.Client.Timeout = timeout
		}
	}
}

var _ TextExtractor = (*TikaPDFExtractor)(nil)

// NewTikaPDFExtractor 创建Tika提取器
func NewTikaPDFExtractor(serverURL string, options ...TikaOption) *TikaPDFExtractor {
	extractor := &TikaPDFExtractor{
		ServerURL:          strings.TrimRight(serverURL, "/"),
		Client:             &http.Client{Timeout: 60 * time.Second},
		metadataMode:       MetadataNone,
		extractAnnotations: true,
		logger:             componentLogger("pdf_tika"),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

func (e *TikaPDFExtractor) Name() string { return "tika" }

// ExtractFromFile 读取文件后交给Tika服务器提取
func (e *TikaPDFExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("打开PDF文件 %s 失败: %w", filePath, err)
	}
	return e.ExtractTextFromBytes(ctx, data, filePath)
}

// ExtractTextFromBytes 以纯文本模式调用 PUT /tika
func (e *TikaPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	startTime := time.Now()
	metadata := map[string]interface{}{
		"source_file_path": uri,
		"extractor":        e.Name(),
	}

	headers := map[string]string{"Accept": "text/plain"}
	if !e.extractAnnotations {
		headers["X-Tika-PDFExtractAnnotationText"] = "false"
	}
	body, err := e.put(ctx, "/tika", data, uri, headers)
	if err != nil {
		return "", metadata, err
	}

	text := string(body)
	metadata["text_length"] = len(text)
	metadata["processing_duration_ms"] = time.Since(startTime).Milliseconds()

	if e.metadataMode != MetadataNone {
		raw, err := e.extractMetadata(ctx, data, uri)
		if err != nil {
			e.logger.Warn().Err(err).Str("uri", uri).Msg("Tika元数据提取失败，继续使用基本元数据")
		}
		for k, v := range raw {
			if e.metadataMode == MetadataFull || isImportantMetadata(k) {
				metadata[k] = v
			}
		}
	}

	return text, metadata, nil
}

// extractMetadata 调用 PUT /meta 获取文档元数据
func (e *TikaPDFExtractor) extractMetadata(ctx context.Context, data []byte, uri string) (map[string]interface{}, error) {
	body, err := e.put(ctx, "/meta", data, uri, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	var metadata map[string]interface{}
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, fmt.Errorf("解析元数据JSON失败: %w", err)
	}
	return metadata, nil
}

func (e *TikaPDFExtractor) put(ctx context.Context, path string, data []byte, uri string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, e.ServerURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")
	if uri != "" {
		req.Header.Set("X-Tika-Resource-Name", uri)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求到Tika服务器失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tika服务器返回错误状态码: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取Tika响应失败: %w", err)
	}
	return body, nil
}

// isImportantMetadata 精简模式保留的元数据键
func isImportantMetadata(key string) bool {
	switch key {
	case "pdf:PDFVersion", "xmpTPg:NPages", "dcterms:created", "language",
		"dc:title", "Content-Type", "pdf:encrypted", "pdf:docinfo:title":
		return true
	}
	return false
}
