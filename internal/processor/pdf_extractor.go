package processor

import (
	"context"
	"time"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/parser"

	"github.com/rs/zerolog"
)

// BuildPDFExtractor 根据配置构建提取链
// 顺序为 [Tika(配置了 server_url 时)] -> Eino -> 逐页提取
// 各提取器的日志从 log 派生，带上各自的 component 字段
func BuildPDFExtractor(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*parser.FallbackExtractor, error) {
	var chain []parser.TextExtractor

	if cfg.Tika.ServerURL != "" {
		log.Info().Str("server_url", cfg.Tika.ServerURL).Msg("检测到Tika配置，Tika作为首选提取器")
		opts := []parser.TikaOption{
			parser.WithMetadataMode(cfg.Tika.MetadataMode),
			parser.WithTikaLogger(componentLogger(log, "pdf_tika")),
		}
		if cfg.Tika.Timeout > 0 {
			opts = append(opts, parser.WithTimeout(time.Duration(cfg.Tika.Timeout)*time.Second))
		}
		chain = append(chain, parser.NewTikaPDFExtractor(cfg.Tika.ServerURL, opts...))
	}

	timeout := config.GetDuration(cfg.Extractor.Timeout, 30*time.Second)

	eino, err := parser.NewEinoPDFTextExtractor(ctx,
		parser.WithEinoTimeout(timeout),
		parser.WithEinoLogger(componentLogger(log, "pdf_eino")),
	)
	if err != nil {
		return nil, err
	}
	chain = append(chain, eino, parser.NewPagedPDFExtractor(parser.WithPagedLogger(componentLogger(log, "pdf_pages"))))

	return parser.NewFallbackExtractor(chain,
		parser.WithAttemptTimeout(timeout),
		parser.WithFallbackLogger(componentLogger(log, "pdf_fallback")),
	), nil
}

// ReadableExtensions 当前提取链能读取的扩展名(不带点)
// doc/docx 只有 Tika 能处理
func ReadableExtensions(cfg *config.Config) []string {
	if cfg.Tika.ServerURL != "" {
		return []string{"pdf", "doc", "docx"}
	}
	return []string{"pdf"}
}

func componentLogger(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
