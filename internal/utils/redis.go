package utils

import (
	"country-api/internal/config"
	"country-api/internal/logger"

	"github.com/redis/go-redis/v9"
)

// OpenRedis：按配置打开 Redis 客户端；未启用时返回 nil，调用方据此跳过共享缓存
func OpenRedis(cfg config.Redis) *redis.Client {
	if !cfg.Enabled {
		return nil
	}
	logger.L().Debug("redis_config", "addr", cfg.Addr(), "db", cfg.DB)
	return redis.NewClient(&redis.Options{Addr: cfg.Addr(), Password: cfg.Password, DB: cfg.DB})
}
