package router

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/logger"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := logger.Logger
	logger.Logger = zerolog.New(&buf)
	t.Cleanup(func() { logger.Logger = orig })
	return &buf
}

func newLoggedEngine() *server.Hertz {
	h := server.New(server.WithHostPorts("127.0.0.1:0"))
	h.Use(RequestLog())
	h.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		logger.Ctx(ctx).Info().Msg("inside")
		c.String(http.StatusOK, "pong")
	})
	return h
}

func TestRequestLogAssignsRequestID(t *testing.T) {
	buf := captureLogs(t)
	h := newLoggedEngine()

	resp := ut.PerformRequest(h.Engine, "GET", "/ping", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	id := resp.Header().Get(constants.HeaderRequestID)
	require.Len(t, id, 36)
	// 处理函数内的日志和访问日志都带同一个 request_id
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"request_id":"`+id+`"`)))
	assert.Contains(t, buf.String(), `"message":"inside"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRequestLogKeepsClientRequestID(t *testing.T) {
	buf := captureLogs(t)
	h := newLoggedEngine()

	resp := ut.PerformRequest(h.Engine, "GET", "/ping", nil,
		ut.Header{Key: constants.HeaderRequestID, Value: "client-42"})
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "client-42", resp.Header().Get(constants.HeaderRequestID))
	assert.Contains(t, buf.String(), `"request_id":"client-42"`)
}
