package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"resume-parser-go/internal/ner"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/tracing"
	"resume-parser-go/internal/types"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// mockExtractor 模拟文本提取器
type mockExtractor struct {
	text  string
	err   error
	mu    sync.Mutex
	calls int
}

func (m *mockExtractor) Name() string { return "mock" }

func (m *mockExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return "", nil, m.err
	}
	return m.text, map[string]interface{}{"extractor": m.Name()}, nil
}

// mockRecognizer 返回固定实体
type mockRecognizer struct {
	entities []ner.Entity
}

func (m *mockRecognizer) Entities(text string) []ner.Entity { return m.entities }

// memoryCache 内存版结果缓存
type memoryCache struct {
	mu     sync.Mutex
	items  map[string]*types.ParsedResume
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]*types.ParsedResume)}
}

func (c *memoryCache) GetParsedResume(ctx context.Context, fileMD5 string) (*types.ParsedResume, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.items[fileMD5]; ok {
		return r, nil
	}
	return nil, errors.New("miss")
}

func (c *memoryCache) SetParsedResume(ctx context.Context, fileMD5 string, parsed *types.ParsedResume) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[fileMD5] = parsed
	return nil
}

const sampleResume = `Jane Doe
Contact: jane@example.com, Phone: 9876543210
Gender: Female
Skills: Python, Machine Learning, Docker
B.Tech in Computer Science, Year of Passing: 2024, CGPA: 8.75
Internship at Acme Corp as a backend intern
Projects: built a machine learning pipeline for image classification`

func TestParseTextContactOnly(t *testing.T) {
	p := NewResumeParser(nil, nil)
	got := p.ParseText(context.Background(), "Contact: jane@example.com, Phone: 9876543210")

	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "+919876543210", got.Phone)
	assert.Equal(t, "", got.Name)
	assert.Equal(t, "Unknown", got.Location)
	assert.Equal(t, "0", got.Experience)
	assert.Equal(t, "0", got.Education.Backlogs)
	assert.NotNil(t, got.Skills)
	assert.NotNil(t, got.ProgrammingLanguages)
	assert.NotNil(t, got.ProjectDomains)
}

func TestParseTextWithProseModel(t *testing.T) {
	rec, err := ner.LoadProseRecognizer()
	require.NoError(t, err)
	p := NewResumeParser(nil, rec)

	tests := []struct {
		name string
		text string
	}{
		{"只有联系方式", "Contact: jane@example.com, Phone: 9876543210"},
		{"技能行", "Skills: Python, Docker, Kubernetes\nCGPA: 8.5"},
		{"标签行", "Email: jane@example.com\nMobile: 9876543210\nEducation: B.Tech"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ParseText(context.Background(), tt.text)
			assert.Equal(t, "", got.Name, "标签和技能词不应被当作姓名")
			assert.Equal(t, "Unknown", got.Location, "标签和技能词不应被当作地点")
		})
	}

	got := p.ParseText(context.Background(), "Contact: jane@example.com, Phone: 9876543210")
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "+919876543210", got.Phone)
}

func TestParseTextEmpty(t *testing.T) {
	p := NewResumeParser(nil, &mockRecognizer{})
	assert.Equal(t, types.NewParsedResume(), p.ParseText(context.Background(), ""))
}

func TestParseTextUsesRecognizer(t *testing.T) {
	rec := &mockRecognizer{entities: []ner.Entity{
		{Text: "Jane Doe", Label: ner.LabelPerson},
		{Text: "Bangalore", Label: ner.LabelGPE},
	}}
	p := NewResumeParser(nil, rec, WithPrefixLength(200))

	got := p.ParseText(context.Background(), sampleResume)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "Bangalore", got.Location)
	assert.Equal(t, "Female", got.Gender)
	assert.Equal(t, "2024", got.Education.YearOfPassing)
	assert.Equal(t, "8.75", got.Education.CGPA)
	assert.Contains(t, got.ProgrammingLanguages, "python")
	assert.Equal(t, 2, got.InternshipCount)
}

func TestParseFile(t *testing.T) {
	ext := &mockExtractor{text: sampleResume}
	p := NewResumeParser(ext, nil)

	got, err := p.ParseFile(context.Background(), "/tmp/cv.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, 1, ext.calls)
}

func TestParseFileExtractError(t *testing.T) {
	ext := &mockExtractor{err: parser.ErrNoText}
	p := NewResumeParser(ext, nil)

	got, err := p.ParseFile(context.Background(), "/tmp/cv.pdf", "")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtractTextFailed)

	var parseErr *ResumeParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "extract", parseErr.Op)
	assert.Equal(t, "/tmp/cv.pdf", parseErr.File)
}

func TestParseFileUnreadableExtension(t *testing.T) {
	ext := &mockExtractor{text: sampleResume}
	p := NewResumeParser(ext, nil, WithReadableExtensions("pdf"))

	_, err := p.ParseFile(context.Background(), "/tmp/cv.docx", "")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.NotErrorIs(t, err, ErrExtractTextFailed)
	assert.Equal(t, 0, ext.calls, "不支持的格式不应进入提取链")

	got, err := p.ParseFile(context.Background(), "/tmp/CV.PDF", "")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestParseFileOpenError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	ext := &mockExtractor{err: fmt.Errorf("eino: failed to open PDF file %s: %w", missing,
		&fs.PathError{Op: "open", Path: missing, Err: fs.ErrNotExist})}
	p := NewResumeParser(ext, nil)

	_, err := p.ParseFile(context.Background(), missing, "")
	assert.ErrorIs(t, err, ErrFileOpenFailed)
	assert.NotErrorIs(t, err, ErrExtractTextFailed)

	var parseErr *ResumeParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "open", parseErr.Op)
	assert.Equal(t, fs.ErrNotExist.Error(), parseErr.Detail)
}

func TestParseFileUsesLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewResumeParser(&mockExtractor{err: parser.ErrNoText}, nil, WithLogger(zerolog.New(&buf)))

	_, err := p.ParseFile(context.Background(), "/tmp/cv.pdf", "abc123")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "简历文本提取失败")
	assert.Contains(t, buf.String(), `"md5":"abc123"`)
}

func TestParseFileRecordsTextPreview(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	long := sampleResume + "\n" + strings.Repeat("Additional experience line. ", 40)
	_, err := NewResumeParser(&mockExtractor{text: long}, nil).ParseFile(context.Background(), "/tmp/cv.pdf", "")
	require.NoError(t, err)

	var preview string
	for _, span := range recorder.Ended() {
		if span.Name() != "ResumeParser.ParseFile" {
			continue
		}
		for _, ev := range span.Events() {
			for _, kv := range ev.Attributes {
				if kv.Key == "text.preview" {
					preview = kv.Value.AsString()
				}
			}
		}
	}
	require.NotEmpty(t, preview)
	assert.LessOrEqual(t, len([]rune(preview)), tracing.MaxResumeLength)
	assert.True(t, strings.HasPrefix(preview, "Jane Doe"))
}

func TestParseFileWithoutExtractor(t *testing.T) {
	p := NewResumeParser(nil, nil)
	_, err := p.ParseFile(context.Background(), "/tmp/cv.pdf", "")
	assert.ErrorIs(t, err, ErrExtractTextFailed)
}

func TestParseFileCache(t *testing.T) {
	ext := &mockExtractor{text: sampleResume}
	cache := newMemoryCache()
	p := NewResumeParser(ext, nil, WithCache(cache))

	first, err := p.ParseFile(context.Background(), "/tmp/a.pdf", "abc123")
	require.NoError(t, err)
	second, err := p.ParseFile(context.Background(), "/tmp/b.pdf", "abc123")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, ext.calls, "第二次应命中缓存")

	// 没有MD5时不走缓存
	_, err = p.ParseFile(context.Background(), "/tmp/c.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, 2, ext.calls)
}

func TestParseFileCacheWriteFailureIgnored(t *testing.T) {
	cache := newMemoryCache()
	cache.setErr = errors.New("redis down")
	p := NewResumeParser(&mockExtractor{text: sampleResume}, nil, WithCache(cache))

	got, err := p.ParseFile(context.Background(), "/tmp/a.pdf", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestParseFileConcurrent(t *testing.T) {
	p := NewResumeParser(&mockExtractor{text: sampleResume}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.ParseFile(context.Background(), "/tmp/cv.pdf", "")
			assert.NoError(t, err)
			assert.Equal(t, "+919876543210", got.Phone)
		}()
	}
	wg.Wait()
}

func TestResumeParseError(t *testing.T) {
	err := NewOpenError("cv.pdf", "permission denied")
	assert.ErrorIs(t, err, ErrFileOpenFailed)
	assert.NotErrorIs(t, err, ErrExtractTextFailed)
	assert.Contains(t, err.Error(), "permission denied")

	err = NewUnsupportedError("cv.txt", "")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.NotContains(t, err.Error(), "): ")
}
