package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// FallbackExtractor 依次尝试多个提取器，返回第一个非空白结果
type FallbackExtractor struct {
	extractors []TextExtractor
	timeout    time.Duration
	logger     zerolog.Logger
}

// FallbackOption 配置选项
type FallbackOption func(*FallbackExtractor)

// WithAttemptTimeout 单个提取器的超时时间
func WithAttemptTimeout(d time.Duration) FallbackOption {
	return func(f *FallbackExtractor) {
		f.timeout = d
	}
}

// WithFallbackLogger 配置自定义日志记录器
func WithFallbackLogger(l zerolog.Logger) FallbackOption {
	return func(f *FallbackExtractor) {
		f.logger = l
	}
}

var _ TextExtractor = (*FallbackExtractor)(nil)

// NewFallbackExtractor 按给定顺序组成提取链，nil 项会被忽略
func NewFallbackExtractor(extractors []TextExtractor, options ...FallbackOption) *FallbackExtractor {
	f := &FallbackExtractor{
		timeout: 30 * time.Second,
		logger:  componentLogger("pdf_fallback"),
	}
	for _, e := range extractors {
		if e != nil {
			f.extractors = append(f.extractors, e)
		}
	}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *FallbackExtractor) Name() string {
	names := make([]string, len(f.extractors))
	for i, e := range f.extractors {
		names[i] = e.Name()
	}
	return "fallback(" + strings.Join(names, ",") + ")"
}

// ExtractFromFile 依次尝试各提取器
// 某个提取器报错或只得到空白文本时换下一个；全部失败返回包装了 ErrNoText 的错误
func (f *FallbackExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	var errs []error
	for _, e := range f.extractors {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		text, metadata, err := f.attempt(ctx, e, filePath)
		if err != nil {
			f.logger.Warn().Err(err).Str("extractor", e.Name()).Str("file", filePath).Msg("提取器失败，尝试下一个")
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			f.logger.Warn().Str("extractor", e.Name()).Str("file", filePath).Msg("提取结果为空，尝试下一个")
			errs = append(errs, fmt.Errorf("%s: empty text", e.Name()))
			continue
		}

		if metadata == nil {
			metadata = make(map[string]interface{})
		}
		metadata["extractor"] = e.Name()
		return text, metadata, nil
	}

	// 调用方取消或超时的错误保持原样返回
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if len(errs) == 0 {
		return "", nil, ErrNoText
	}
	return "", nil, fmt.Errorf("%w: %w", ErrNoText, errors.Join(errs...))
}

type attemptResult struct {
	text     string
	metadata map[string]interface{}
	err      error
}

// attempt 在独立 goroutine 中运行提取器，超时后不再等待其返回
func (f *FallbackExtractor) attempt(ctx context.Context, e TextExtractor, filePath string) (string, map[string]interface{}, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	done := make(chan attemptResult, 1)
	go func() {
		var res attemptResult
		defer func() {
			if r := recover(); r != nil {
				res = attemptResult{err: fmt.Errorf("%s: PDF库发生panic: %v", e.Name(), r)}
			}
			done <- res
		}()
		res.text, res.metadata, res.err = e.ExtractFromFile(ctx, filePath)
	}()

	select {
	case res := <-done:
		return res.text, res.metadata, res.err
	case <-ctx.Done():
		return "", nil, fmt.Errorf("提取超时: %w", ctx.Err())
	}
}
