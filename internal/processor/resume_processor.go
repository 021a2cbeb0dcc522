package processor

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"resume-parser-go/internal/extract"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/ner"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/tracing"
	"resume-parser-go/internal/types"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ResumeParser 简历解析入口：提取文本 -> 逐字段抽取 -> 组装结果
// 本身无状态，可被多个请求并发使用
type ResumeParser struct {
	extractor    parser.TextExtractor
	recognizer   ner.Recognizer
	cache        ResultCache
	prefixLength int
	extensions   map[string]struct{}
	logger       zerolog.Logger
}

var _ Parser = (*ResumeParser)(nil)

// NewResumeParser 创建解析器
// recognizer 为 nil 时姓名和地点使用默认值
func NewResumeParser(extractor parser.TextExtractor, recognizer ner.Recognizer, opts ...ParserOption) *ResumeParser {
	p := &ResumeParser{
		extractor:    extractor,
		recognizer:   recognizer,
		prefixLength: ner.DefaultPrefixLength,
		logger:       logger.Logger.With().Str("component", "resume_parser").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile 解析磁盘上的简历文件
// fileMD5 非空且配置了缓存时，先查缓存，解析成功后回写
func (p *ResumeParser) ParseFile(ctx context.Context, filePath, fileMD5 string) (*types.ParsedResume, error) {
	ctx, span := tracing.Tracer().Start(ctx, "ResumeParser.ParseFile",
		trace.WithAttributes(
			attribute.String("file.name", tracing.SafeFilename(filepath.Base(filePath))),
			attribute.String("file.md5", fileMD5),
		))
	defer span.End()

	log := p.logger.With().Str("file", filepath.Base(filePath)).Str("md5", fileMD5).Logger()

	if !p.canRead(filePath) {
		err := NewUnsupportedError(filePath, "当前提取链无法读取该格式")
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	if p.cache != nil && fileMD5 != "" {
		cached, err := p.cache.GetParsedResume(ctx, fileMD5)
		if err == nil && cached != nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			log.Debug().Msg("命中解析结果缓存")
			return cached, nil
		}
		span.SetAttributes(attribute.Bool("cache.hit", false))
	}

	if p.extractor == nil {
		err := NewExtractError(filePath, "未配置文本提取器")
		tracing.RecordError(span, err, tracing.ErrorTypeExtract)
		return nil, err
	}

	start := time.Now()
	text, metadata, err := p.extractor.ExtractFromFile(ctx, filePath)
	if err != nil {
		log.Warn().Err(err).Dur("duration", time.Since(start)).Msg("简历文本提取失败")
		var pathErr *fs.PathError
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			tracing.RecordError(span, err, tracing.ErrorTypeTimeout)
		case errors.As(err, &pathErr):
			tracing.RecordError(span, err, tracing.ErrorTypeStorage)
			return nil, NewOpenError(filePath, pathErr.Err.Error())
		default:
			tracing.RecordError(span, err, tracing.ErrorTypeExtract)
		}
		return nil, NewExtractError(filePath, err.Error())
	}
	if extractor, ok := metadata["extractor"].(string); ok {
		span.SetAttributes(attribute.String("extractor", extractor))
	}
	span.SetAttributes(attribute.Int("text.length", len(text)))
	span.AddEvent("text.extracted", trace.WithAttributes(
		attribute.String("text.preview", tracing.SafeResumeContent(text)),
	))
	log.Info().Int("chars", len(text)).Dur("duration", time.Since(start)).Msg("简历文本提取完成")

	result := p.ParseText(ctx, text)

	if p.cache != nil && fileMD5 != "" {
		if err := p.cache.SetParsedResume(ctx, fileMD5, result); err != nil {
			// 缓存失败不影响本次响应
			log.Warn().Err(err).Msg("写入解析结果缓存失败")
		}
	}

	span.SetStatus(codes.Ok, "")
	return result, nil
}

// canRead 未限定扩展名时全部放行
func (p *ResumeParser) canRead(filePath string) bool {
	if len(p.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	_, ok := p.extensions[ext]
	return ok
}

// ParseText 从已提取的纯文本中抽取全部字段，任何字段缺失都回退为默认值
func (p *ResumeParser) ParseText(ctx context.Context, text string) *types.ParsedResume {
	_, span := tracing.Tracer().Start(ctx, "ResumeParser.ParseText")
	defer span.End()

	result := types.NewParsedResume()
	if text == "" {
		return result
	}

	result.Name = extract.Name(p.recognizer, text, p.prefixLength)
	result.Email = extract.Email(text)
	result.Phone = extract.Phone(text)
	result.Gender = extract.Gender(text)
	result.Skills = extract.Skills(text)
	result.ProgrammingLanguages = extract.ProgrammingLanguages(text)
	result.ProjectDomains = extract.ProjectDomains(text)
	result.Education = extract.Education(text)
	result.Internships = extract.Internships(text)
	result.InternshipCount = extract.InternshipCount(text)
	result.Projects = extract.Projects(text)
	result.Backlogs = extract.Backlogs(text)
	result.Experience = extract.Experience(text)
	result.Location = extract.Location(p.recognizer, text, p.prefixLength)

	span.SetAttributes(
		attribute.Int("resume.skills", len(result.Skills)),
		attribute.Int("resume.programming_languages", len(result.ProgrammingLanguages)),
		attribute.Int("resume.internship_count", result.InternshipCount),
		attribute.String("resume.email", tracing.MaskPII(result.Email)),
	)
	return result
}
