package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resume-parser-go/internal/config"
	appCoreLogger "resume-parser-go/internal/logger"
	"resume-parser-go/internal/ner"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/processor"

	"github.com/rs/zerolog"
)

// setup 加载配置、初始化日志并构建提取链
// 返回的日志实例带上当前命令和文件名
func setup(ctx context.Context, path string) (*config.Config, *parser.FallbackExtractor, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}
	appCoreLogger.Init(appCoreLogger.Config{
		Level:      cfg.Logger.Level,
		Format:     "pretty",
		TimeFormat: cfg.Logger.TimeFormat,
		Output:     os.Stderr,
	})

	log := appCoreLogger.Logger.With().Str("cmd", *command).Str("pdf", filepath.Base(path)).Logger()

	extractor, err := processor.BuildPDFExtractor(ctx, cfg, log)
	if err != nil {
		return nil, nil, log, fmt.Errorf("创建PDF提取器失败: %w", err)
	}
	return cfg, extractor, log, nil
}

func absExisting(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("无法获取文件的绝对路径: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return "", fmt.Errorf("无法访问文件 %s: %w", absPath, err)
	}
	return absPath, nil
}

// handleExtractCommand 只提取文本
func handleExtractCommand(path string) error {
	absPath, err := absExisting(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	_, extractor, _, err := setup(ctx, absPath)
	if err != nil {
		return err
	}

	startTime := time.Now()
	text, metadata, err := extractor.ExtractFromFile(ctx, absPath)
	if err != nil {
		return fmt.Errorf("提取PDF文本失败: %w", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(text), 0o644); err != nil {
			return fmt.Errorf("保存文本失败: %w", err)
		}
		fmt.Printf("文本已保存到 %s\n", *outputFile)
		return nil
	}

	fmt.Printf("提取完成! 耗时: %v, 提取器: %v\n", time.Since(startTime), metadata["extractor"])
	fmt.Printf("\n===== 提取的文本 (总计 %d 字符) =====\n", len([]rune(text)))
	displayText := text
	if *maxLen >= 0 {
		displayText = ner.Prefix(text, *maxLen)
	}
	fmt.Println(displayText)
	if len(displayText) < len(text) {
		fmt.Println("... (已截断，使用 --maxlen=-1 显示全部)")
	}
	return nil
}

// handleParseCommand 提取并解析，结果以JSON输出
func handleParseCommand(path string) error {
	absPath, err := absExisting(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, extractor, log, err := setup(ctx, absPath)
	if err != nil {
		return err
	}

	recognizer, err := ner.LoadProseRecognizer()
	if err != nil {
		return fmt.Errorf("加载NER模型失败: %w", err)
	}

	resumeParser := processor.NewResumeParser(extractor, recognizer,
		processor.WithPrefixLength(cfg.NER.PrefixLength),
		processor.WithReadableExtensions(processor.ReadableExtensions(cfg)...),
		processor.WithLogger(log.With().Str("component", "resume_parser").Logger()),
	)
	result, err := resumeParser.ParseFile(ctx, absPath, "")
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化结果失败: %w", err)
	}
	if *outputFile != "" {
		return os.WriteFile(*outputFile, data, 0o644)
	}
	fmt.Println(string(data))
	return nil
}
