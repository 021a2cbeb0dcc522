package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// 上传文件配置
	Upload UploadConfig `yaml:"upload"`

	// 文本提取配置
	Extractor ExtractorConfig `yaml:"extractor"`

	// Tika服务器配置 (可选，配置后作为首选提取器)
	Tika TikaConfig `yaml:"tika"`

	// 命名实体识别配置
	NER NERConfig `yaml:"ner"`

	// Redis解析结果缓存配置 (可选)
	Redis RedisConfig `yaml:"redis"`

	// 链路追踪配置
	Tracing TracingConfig `yaml:"tracing"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address            string   `yaml:"address"`                      // 例如 ":5000" or "0.0.0.0:5000"
	MaxRequestBodySize int      `yaml:"max_request_body_size"`        // 请求体上限(字节)
	CORSAllowOrigins   []string `yaml:"cors_allow_origins,omitempty"` // 为空时允许所有来源
	ShutdownTimeout    string   `yaml:"shutdown_timeout"`             // 优雅退出超时，例如 "5s"
	RateLimitQPM       int      `yaml:"rate_limit_qpm"`               // 上传接口每分钟请求数上限，0 表示不限流
	RateLimitBurst     int      `yaml:"rate_limit_burst"`             // 突发容量，0 时取 QPM 的一半
}

// UploadConfig 上传文件配置
type UploadConfig struct {
	Dir               string   `yaml:"dir"`                // 上传文件临时目录
	FormField         string   `yaml:"form_field"`         // multipart 字段名
	AllowedExtensions []string `yaml:"allowed_extensions"` // 不带点的小写扩展名
}

// ExtractorConfig PDF文本提取配置
type ExtractorConfig struct {
	Timeout string `yaml:"timeout"` // 单个文件提取超时，例如 "30s"
}

// TikaConfig Tika服务器配置结构
type TikaConfig struct {
	ServerURL    string `yaml:"server_url"`      // Tika服务器URL，为空则不启用
	Timeout      int    `yaml:"timeout_seconds"` // 超时时间(秒)
	MetadataMode string `yaml:"metadata_mode"`   // 元数据模式: "full", "minimal", "none"
}

// NERConfig 命名实体识别配置
type NERConfig struct {
	// 送入模型的文本前缀长度(字符)
	PrefixLength int `yaml:"prefix_length"`
}

// RedisConfig holds configuration for Redis
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	MaxRetries          int `yaml:"max_retries"`           // 最大重试次数
	// 解析结果缓存时间(秒)
	ResultTTLSeconds int `yaml:"result_ttl_seconds"`
}

// TracingConfig OpenTelemetry 配置
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // OTLP gRPC 地址，例如 "localhost:4317"
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// LoadConfig 从文件加载配置
// 文件中未设置的字段使用 DefaultConfig 中的默认值
func LoadConfig(configPath string) (*Config, error) {
	// 如果未指定配置文件路径，则尝试在默认位置查找
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			filepath.Join("internal", "config", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".resume-parser", "config.yaml"),
		}
		if execPath, err := os.Executable(); err == nil {
			searchPaths = append(searchPaths, filepath.Join(filepath.Dir(execPath), "config.yaml"))
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
		// 找不到配置文件时直接使用默认配置
		if configPath == "" {
			config := DefaultConfig()
			applyEnvOverrides(config)
			return config, nil
		}
	}

	// 检查文件是否存在
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	// 读取配置文件
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 在默认配置之上解析，未出现的键保持默认值
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(config)
	config.normalize()

	return config, nil
}

// applyEnvOverrides 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RESUME_SERVER_ADDRESS"); v != "" {
		config.Server.Address = v
	}
	if v := os.Getenv("RESUME_UPLOAD_DIR"); v != "" {
		config.Upload.Dir = v
	}
	if v := os.Getenv("RESUME_TIKA_URL"); v != "" {
		config.Tika.ServerURL = v
	}
	if v := os.Getenv("RESUME_REDIS_ADDRESS"); v != "" {
		config.Redis.Address = v
		config.Redis.Enabled = true
	}
}

// normalize 修正用户填写的不规范值
func (c *Config) normalize() {
	exts := make([]string, 0, len(c.Upload.AllowedExtensions))
	for _, ext := range c.Upload.AllowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	c.Upload.AllowedExtensions = exts

	if c.Server.Address == "" {
		c.Server.Address = ":5000"
	}
	if c.Server.MaxRequestBodySize <= 0 {
		c.Server.MaxRequestBodySize = 16 * 1024 * 1024
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = "uploads"
	}
	if c.Upload.FormField == "" {
		c.Upload.FormField = "resume"
	}
	if c.NER.PrefixLength <= 0 {
		c.NER.PrefixLength = 1000
	}
}

// DefaultConfig 返回一份完整的默认配置
func DefaultConfig() *Config {
	config := &Config{}

	config.Server.Address = ":5000"
	config.Server.MaxRequestBodySize = 16 * 1024 * 1024 // 16MB
	config.Server.ShutdownTimeout = "5s"

	config.Upload.Dir = "uploads"
	config.Upload.FormField = "resume"
	config.Upload.AllowedExtensions = []string{"pdf", "doc", "docx"}

	config.Extractor.Timeout = "30s"

	// Tika默认不启用
	config.Tika.Timeout = 60
	config.Tika.MetadataMode = "none"

	config.NER.PrefixLength = 1000

	// Redis默认配置
	config.Redis.Enabled = false
	config.Redis.Address = "localhost:6379"
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3
	config.Redis.MaxRetries = 3
	config.Redis.ResultTTLSeconds = 600

	config.Tracing.Enabled = false
	config.Tracing.Endpoint = "localhost:4317"
	config.Tracing.Insecure = true
	config.Tracing.ServiceName = "resume-parser-go"
	config.Tracing.SampleRatio = 1.0

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty" // 开发环境默认使用美化输出
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	return config
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	// 检查文件是否已存在
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}
	return nil
}

// IsExtensionAllowed 判断扩展名(不带点)是否在白名单中
func (c *Config) IsExtensionAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range c.Upload.AllowedExtensions {
		if allowed == ext {
			return true
		}
	}
	return false
}

// GetDuration utility to parse duration strings from config
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
