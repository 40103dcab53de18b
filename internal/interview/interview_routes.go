package interview

import (
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string) {
	interviews := r.Group("/interviews")
	interviews.Use(middleware.AuthMiddleware(jwtSecret))
	{
		interviews.GET("", middleware.Authorize(rbacService, "interviews", "read"), handler.GetAll)
		interviews.POST("", middleware.Authorize(rbacService, "interviews", "create"), handler.Schedule)
		interviews.DELETE("/:id", middleware.Authorize(rbacService, "interviews", "delete"), handler.Delete)
		interviews.DELETE("", middleware.Authorize(rbacService, "interviews", "delete"), handler.DeleteAll)
	}
}
