package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-parser-go/internal/api/handler"
	"resume-parser-go/internal/api/router"
	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
	appCoreLogger "resume-parser-go/internal/logger"
	"resume-parser-go/internal/ner"
	"resume-parser-go/internal/processor"
	"resume-parser-go/internal/ratelimit"
	"resume-parser-go/internal/storage"
	"resume-parser-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

var version = "1.0.0" //nolint:gochecknoglobals

func main() {
	var (
		configPath string
		initConfig string
	)
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.StringVar(&initConfig, "init-config", "", "Write a sample config file to the given path and exit")
	pflag.Parse()

	if initConfig != "" {
		if err := config.CreateSampleConfig(initConfig); err != nil {
			glog.Fatalf("生成示例配置失败: %v", err)
		}
		glog.Infof("示例配置已写入 %s", initConfig)
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	appCoreLogger.Info().Str("version", version).Str("address", cfg.Server.Address).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		shutdownTracing, err = tracing.InitProvider(ctx, tracing.ProviderConfig{
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			ServiceName: cfg.Tracing.ServiceName,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			appCoreLogger.Fatal().Err(err).Msg("初始化链路追踪失败")
		}
		appCoreLogger.Info().Str("endpoint", cfg.Tracing.Endpoint).Msg("链路追踪已启用")
	}

	// NER 模型只在启动时加载一次，加载失败直接退出
	recognizer, err := ner.LoadProseRecognizer()
	if err != nil {
		appCoreLogger.Fatal().Err(err).Msg("加载NER模型失败")
	}
	appCoreLogger.Info().Msg("NER模型加载成功")

	extractor, err := processor.BuildPDFExtractor(ctx, cfg, appCoreLogger.Logger)
	if err != nil {
		appCoreLogger.Fatal().Err(err).Msg("创建PDF提取器失败")
	}
	appCoreLogger.Info().Str("chain", extractor.Name()).Msg("PDF提取器初始化成功")

	storageManager, err := storage.NewStorage(cfg)
	if err != nil {
		appCoreLogger.Fatal().Err(err).Msg("初始化存储失败")
	}

	parserOpts := []processor.ParserOption{
		processor.WithPrefixLength(cfg.NER.PrefixLength),
		processor.WithReadableExtensions(processor.ReadableExtensions(cfg)...),
		processor.WithLogger(appCoreLogger.Logger.With().Str("component", "resume_parser").Str("version", version).Logger()),
	}
	if storageManager.Redis != nil {
		parserOpts = append(parserOpts, processor.WithCache(storageManager.Redis))
		appCoreLogger.Info().Msg("Redis解析结果缓存已启用")
	}
	resumeParser := processor.NewResumeParser(extractor, recognizer, parserOpts...)

	resumeHandler := handler.NewResumeHandler(cfg, storageManager.Uploads, resumeParser)

	maxBody := cfg.Server.MaxRequestBodySize
	if maxBody <= 0 {
		maxBody = constants.MaxRequestBodySize
	}
	opts := []hertzconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(maxBody),
		server.WithHandleMethodNotAllowed(true),
	}
	var tracerCfg *hertztracing.Config
	if cfg.Tracing.Enabled {
		var tracerOpt hertzconfig.Option
		tracerOpt, tracerCfg = hertztracing.NewServerTracer()
		opts = append(opts, tracerOpt)
	}

	h := server.New(opts...)
	if tracerCfg != nil {
		h.Use(hertztracing.ServerMiddleware(tracerCfg))
	}
	h.Use(router.RequestLog())

	routeOpts := router.Options{AllowOrigins: cfg.Server.CORSAllowOrigins}
	if cfg.Server.RateLimitQPM > 0 {
		routeOpts.Limiter = ratelimit.NewTokenBucket(cfg.Server.RateLimitQPM, cfg.Server.RateLimitBurst)
		appCoreLogger.Info().Int("qpm", cfg.Server.RateLimitQPM).Msg("上传接口限流已启用")
	}
	router.RegisterRoutes(h, resumeHandler, routeOpts)
	appCoreLogger.Info().Msg("HTTP路由注册成功")

	go func() {
		if err := h.Run(); err != nil {
			appCoreLogger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appCoreLogger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout, 5*time.Second))
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		appCoreLogger.Error().Err(err).Msg("服务器关闭失败")
	}
	if err := storageManager.Close(); err != nil {
		appCoreLogger.Warn().Err(err).Msg("关闭存储连接失败")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appCoreLogger.Warn().Err(err).Msg("刷新链路追踪数据失败")
	}
	appCoreLogger.Info().Msg("优雅退出完成")
}
