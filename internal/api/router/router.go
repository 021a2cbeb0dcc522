package router

import (
	"resume-parser-go/internal/api/handler"
	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/ratelimit"
	"resume-parser-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/cors"
)

// Options 路由可选项
type Options struct {
	// AllowOrigins 为空时允许所有来源
	AllowOrigins []string
	// Limiter 非 nil 时对上传接口限流
	Limiter *ratelimit.TokenBucket
}

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler, opts Options) {
	if len(opts.AllowOrigins) == 0 {
		h.Use(cors.Default())
	} else {
		h.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length", constants.HeaderRequestID},
		}))
	}

	upload := []app.HandlerFunc{resumeHandler.ParseResume}
	if opts.Limiter != nil {
		reject := types.ParseResponse{Success: false, Error: constants.MsgTooManyRequests}
		upload = append([]app.HandlerFunc{ratelimit.Middleware(opts.Limiter, reject)}, upload...)
	}
	h.POST("/parse", upload...)
	h.POST("/api/upload/", upload...)

	// 健康检查
	h.GET("/health", handler.Health)
}
