package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/tracing"
	"resume-parser-go/internal/types"
)

// ErrNotFound 缓存未命中
var ErrNotFound = redis.Nil

var redisTracer = otel.Tracer("resume-parser-go/storage/redis")

// Redis 解析结果缓存
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
	ttl    time.Duration
}

// NewRedisAdapter 创建Redis客户端并检查连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		MaxRetries:   cfg.MaxRetries,
	})

	// 所有Redis命令自动生成 span
	if err := redisotel.InstrumentTracing(client); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to instrument Redis with OpenTelemetry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	ttl := time.Duration(cfg.ResultTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Redis{Client: client, config: cfg, ttl: ttl}, nil
}

// Close closes the Redis client connection
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping checks the Redis connection
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// ParsedResumeKey 解析结果缓存键
func ParsedResumeKey(fileMD5 string) string {
	return fmt.Sprintf(constants.KeyParsedResume, fileMD5)
}

// GetParsedResume 按文件MD5读取缓存的解析结果，未命中返回 ErrNotFound
func (r *Redis) GetParsedResume(ctx context.Context, fileMD5 string) (*types.ParsedResume, error) {
	ctx, span := r.startSpan(ctx, "Redis.GetParsedResume", "GET", fileMD5)
	defer span.End()

	if r.Client == nil {
		err := fmt.Errorf("redis client is not initialized")
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return nil, err
	}

	val, err := r.Client.Get(ctx, ParsedResumeKey(fileMD5)).Bytes()
	if errors.Is(err, redis.Nil) {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return nil, ErrNotFound
	}
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return nil, fmt.Errorf("读取解析结果缓存失败: %w", err)
	}

	var parsed types.ParsedResume
	if err := json.Unmarshal(val, &parsed); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return nil, fmt.Errorf("解析缓存内容失败: %w", err)
	}
	span.SetAttributes(attribute.Bool("cache.hit", true))
	return &parsed, nil
}

// SetParsedResume 写入解析结果缓存，过期时间取自配置
func (r *Redis) SetParsedResume(ctx context.Context, fileMD5 string, parsed *types.ParsedResume) error {
	ctx, span := r.startSpan(ctx, "Redis.SetParsedResume", "SET", fileMD5)
	defer span.End()

	if r.Client == nil {
		err := fmt.Errorf("redis client is not initialized")
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return err
	}
	if parsed == nil {
		return fmt.Errorf("parsed resume is nil")
	}

	data, err := json.Marshal(parsed)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return fmt.Errorf("序列化解析结果失败: %w", err)
	}
	if err := r.Client.Set(ctx, ParsedResumeKey(fileMD5), data, r.ttl).Err(); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return fmt.Errorf("写入解析结果缓存失败: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (r *Redis) startSpan(ctx context.Context, name, op, fileMD5 string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "redis"),
		attribute.String("db.operation", op),
		attribute.String("db.redis.key", ParsedResumeKey(fileMD5)),
	}
	if r.config != nil {
		attrs = append(attrs,
			attribute.Int("db.redis.database_index", r.config.DB),
			attribute.String("net.peer.name", r.config.Address),
		)
	}
	return redisTracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}
