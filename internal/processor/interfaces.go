package processor

import (
	"context"

	"resume-parser-go/internal/types"
)

// ResultCache 解析结果缓存，键为文件内容的MD5
// 未命中时 Get 返回 (nil, 非nil错误)
type ResultCache interface {
	GetParsedResume(ctx context.Context, fileMD5 string) (*types.ParsedResume, error)
	SetParsedResume(ctx context.Context, fileMD5 string, parsed *types.ParsedResume) error
}

// Parser 供HTTP层调用的解析入口
type Parser interface {
	ParseFile(ctx context.Context, filePath, fileMD5 string) (*types.ParsedResume, error)
}
