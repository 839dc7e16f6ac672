package app

import (
	"go-employee/internal/config"
	"go-employee/internal/middleware"
	"go-employee/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects the stores, applies migrations and mounts every module on
// router. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if err := connection.Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	logger.Info("database migrations applied")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.Database.MaxRetries, logger)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR not set, caching and idempotency keys disabled")
	}

	router.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
	)
	registerModules(router, gormDB, rdb, logger)

	cleanup := func() {
		if rdb != nil {
			rdb.Close()
		}
		sqlDB.Close()
	}
	return cleanup, nil
}
