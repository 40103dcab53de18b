package leave

import (
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(jwtSecret))
	{
		leaves.GET("", middleware.Authorize(rbacService, "leaves", "read"), handler.GetAll)
		leaves.POST("", middleware.Authorize(rbacService, "leaves", "create"), middleware.Idempotency(rdb), handler.Submit)

		leaves.GET("/pending", middleware.Authorize(rbacService, "leaves", "approve"), handler.GetPending)
		leaves.POST("/:id/approve", middleware.Authorize(rbacService, "leaves", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.Authorize(rbacService, "leaves", "approve"), handler.Reject)
		leaves.POST("/adjust", middleware.Authorize(rbacService, "leaves", "adjust"), middleware.Idempotency(rdb), handler.AdjustBalance)
	}
}
