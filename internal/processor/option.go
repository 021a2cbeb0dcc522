package processor

import (
	"strings"

	"github.com/rs/zerolog"
)

// ParserOption ResumeParser 的配置选项
type ParserOption func(*ResumeParser)

// WithCache 设置解析结果缓存，nil 表示不使用缓存
func WithCache(cache ResultCache) ParserOption {
	return func(p *ResumeParser) {
		p.cache = cache
	}
}

// WithPrefixLength 设置送入NER的文本前缀长度
func WithPrefixLength(n int) ParserOption {
	return func(p *ResumeParser) {
		if n > 0 {
			p.prefixLength = n
		}
	}
}

// WithLogger 设置日志记录器
func WithLogger(l zerolog.Logger) ParserOption {
	return func(p *ResumeParser) {
		p.logger = l
	}
}

// WithReadableExtensions 限定可解析的扩展名(不带点)，为空时不检查
func WithReadableExtensions(exts ...string) ParserOption {
	return func(p *ResumeParser) {
		p.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			p.extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
		}
	}
}
