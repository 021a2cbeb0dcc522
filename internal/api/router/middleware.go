package router

import (
	"context"
	"time"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/logger"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/gofrs/uuid/v5"
)

// RequestLog 为每个请求分配 request_id 并记录访问日志
// 客户端带了 X-Request-ID 时沿用；后续处理函数通过 logger.Ctx 拿到带 request_id 的日志实例
func RequestLog() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()

		requestID := string(ctx.GetHeader(constants.HeaderRequestID))
		if requestID == "" {
			if id, err := uuid.NewV7(); err == nil {
				requestID = id.String()
			}
		}
		ctx.Response.Header.Set(constants.HeaderRequestID, requestID)
		c = logger.WithRequestID(c, requestID)

		ctx.Next(c)

		logger.Ctx(c).Info().
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Int("status", ctx.Response.StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
