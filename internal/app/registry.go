package app

import (
	"database/sql"
	"net/http"

	"hr-dashboard/internal/assistant"
	"hr-dashboard/internal/auth"
	"hr-dashboard/internal/config"
	"hr-dashboard/internal/interview"
	"hr-dashboard/internal/leave"
	"hr-dashboard/internal/notification"
	"hr-dashboard/internal/rbac"
	"hr-dashboard/internal/report"
	"hr-dashboard/internal/shared/response"
	"hr-dashboard/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sashabaranov/go-openai"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	interviewRepo := interview.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := notification.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Notification ---
	enqueuer := notification.NewEnqueuer(outboxRepo, cfg.NotificationTopic)

	// --- AI Collaborator ---
	var completionClient assistant.CompletionClient
	if cfg.OpenAIAPIKey != "" {
		completionClient = openai.NewClient(cfg.OpenAIAPIKey)
	}

	// --- Services ---
	userService := user.NewService(userRepo, cfg.TotalLeavesPerYear)
	authService := auth.NewService(userRepo, cfg.JWTSecret)
	leaveService := leave.NewService(gormDB, leaveRepo, cfg.LeaveRefundOnRejection, enqueuer)
	interviewService := interview.NewService(gormDB, interviewRepo, enqueuer)
	reportService := report.NewService(reportRepo, rdb, cfg.TotalLeavesPerYear)
	assistantService := assistant.NewService(completionClient)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	interviewHandler := interview.NewHandler(interviewService)
	reportHandler := report.NewHandler(reportService)
	assistantHandler := assistant.NewHandler(assistantService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWTSecret)
		user.RegisterRoutes(api, userHandler, rbacService, cfg.JWTSecret)
		leave.RegisterRoutes(api, leaveHandler, rbacService, cfg.JWTSecret, rdb)
		interview.RegisterRoutes(api, interviewHandler, rbacService, cfg.JWTSecret)
		report.RegisterRoutes(api, reportHandler, rbacService, cfg.JWTSecret)
		assistant.RegisterRoutes(api, assistantHandler, rbacService, cfg.JWTSecret)
	}

	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	return nil
}
