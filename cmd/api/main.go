package main

import (
	"time"

	"hr-dashboard/internal/app"
	"hr-dashboard/internal/bootstrap"
	"hr-dashboard/internal/config"
	"hr-dashboard/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())

	if err := app.BuildApp(r, cfg); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	auditLogger := bootstrap.NewZapAuditLogger()
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
	)
}
