package storage

import (
	"fmt"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/logger"
)

// Storage 存储管理器，聚合上传目录与可选的Redis缓存
type Storage struct {
	// 上传文件临时目录
	Uploads *UploadDir

	// 解析结果缓存，未启用或连接失败时为 nil
	Redis *Redis
}

// NewStorage 创建存储管理器
// 上传目录初始化失败直接返回错误；Redis 是可选的，失败只记录告警
func NewStorage(cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	uploads, err := NewUploadDir(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}
	storage := &Storage{Uploads: uploads}

	if cfg.Redis.Enabled {
		logger.Info().Str("address", cfg.Redis.Address).Msg("初始化Redis...")
		storage.Redis, err = NewRedisAdapter(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化Redis失败，解析结果缓存已禁用")
			storage.Redis = nil
		}
	} else {
		logger.Debug().Msg("Redis未启用, 跳过初始化")
	}

	return storage, nil
}

// Close 关闭所有存储连接
func (s *Storage) Close() error {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("关闭Redis失败: %w", err)
		}
	}
	return nil
}
