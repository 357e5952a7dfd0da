package dependencies

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/bamboo_service/config"
)

// InitRedis 初始化 Redis 客户端并验证连通性。
// - 客户端句柄通过依赖注入传递，生命周期由 main 管理（启动时创建，关停时 Close）。
// - 所有超时都有界：连接失败快速返回，不允许调用方无限期阻塞。
func InitRedis(cfg *appConfig.RedisConfig, logger *core.ZapLogger) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis 地址 (redisConfig.address) 未配置")
	}

	dialTimeout := secondsOrDefault(cfg.DialTimeoutSeconds, 5*time.Second)
	readTimeout := secondsOrDefault(cfg.ReadTimeoutSeconds, 5*time.Second)
	writeTimeout := secondsOrDefault(cfg.WriteTimeoutSeconds, 5*time.Second)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	// 带重试的启动自检。
	maxRetries := 5
	retryInterval := 2 * time.Second
	var err error

	logger.Info("开始连接 Redis...", zap.String("address", cfg.Address), zap.Int("db", cfg.DB))
	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		err = client.Ping(ctx).Err()
		cancel()
		if err == nil {
			break
		}
		logger.Warn("无法连接到 Redis，尝试重试",
			zap.Int("retry", i+1),
			zap.Int("maxRetries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}
	if err != nil {
		logger.Error("无法连接到 Redis", zap.Error(err))
		_ = client.Close()
		return nil, fmt.Errorf("无法连接到 Redis (%s): %w", cfg.Address, err)
	}

	logger.Info("成功连接到 Redis",
		zap.String("address", cfg.Address),
		zap.Duration("dialTimeout", dialTimeout),
		zap.Duration("readTimeout", readTimeout),
		zap.Duration("writeTimeout", writeTimeout),
	)
	return client, nil
}

func secondsOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
