package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"resume-parser-go/internal/logger"
)

// ErrNoText 所有提取器都失败或只得到空白文本
var ErrNoText = errors.New("no text could be extracted from the PDF")

// TextExtractor PDF文本提取器
type TextExtractor interface {
	// Name 提取器名称，写入日志和元数据
	Name() string
	// ExtractFromFile 从PDF文件提取文本和元数据
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error)
}

// componentLogger 返回带 component 字段的全局日志子实例
func componentLogger(name string) zerolog.Logger {
	return logger.Logger.With().Str("component", name).Logger()
}

// recoverAsError 将第三方PDF库中的 panic 转为错误
func recoverAsError(name string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: PDF库发生panic: %v", name, r)
	}
}
