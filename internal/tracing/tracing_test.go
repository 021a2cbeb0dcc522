package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return sr, tp
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestRecordError(t *testing.T) {
	sr, tp := newRecorder()
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordError(span, errors.New("boom"), ErrorTypeExtract, attribute.String("file.name", "cv.pdf"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "extract", attrs["error.type"].AsString())
	assert.Equal(t, "boom", attrs["error.message"].AsString())
	assert.Equal(t, "cv.pdf", attrs["file.name"].AsString())
	require.Len(t, spans[0].Events(), 1, "应记录一个 exception 事件")
}

func TestRecordErrorNilIsNoop(t *testing.T) {
	sr, tp := newRecorder()
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordError(span, nil, ErrorTypeInternal)
	RecordError(nil, errors.New("ignored"), ErrorTypeInternal)
	span.End()

	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, codes.Unset, sr.Ended()[0].Status().Code)
}

func TestRecordHTTPError(t *testing.T) {
	sr, tp := newRecorder()
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordHTTPError(span, errors.New("bad upload"), 400)
	span.End()

	attrs := attrMap(sr.Ended()[0].Attributes())
	assert.Equal(t, "http", attrs["error.type"].AsString())
	assert.Equal(t, int64(400), attrs["http.status_code"].AsInt64())
	assert.Equal(t, "client_error", attrs["error.category"].AsString())
}

func TestMaskPII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "*"},
		{"ab", "a*"},
		{"Jane Doe", "J******e"},
		{"jane@example.com", "j***@example.com"},
		{"+919876543210", "*********3210"},
		{"98765 43210", "*******3210"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskPII(tt.in), "输入: %q", tt.in)
	}
}

func TestSafeAttributeValue(t *testing.T) {
	assert.Equal(t, "j***@example.com", SafeAttributeValue("resume.email", "jane@example.com", 10))
	assert.Equal(t, "abc...xyz", SafeAttributeValue("file.path", "abcdefghijklmnopqrstuvwxyz", 9))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "abc...xyz", TruncateString("abcdefghijklmnopqrstuvwxyz", 9))
	assert.Equal(t, "简历...文本", TruncateString("简历内容很长的一段文本", 7))
}
