package app

import (
	"hr-dashboard/internal/config"
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects the infrastructure, migrates the schema and mounts every
// module on the router.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	logger := zap.L()

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := connection.Migrate(gormDB, cfg); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	return registerModules(router, sqlDB, gormDB, redisClient, cfg)
}
