package user

import (
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtSecret))
	{
		users.GET("", middleware.Authorize(rbacService, "users", "read"), handler.GetAll)
		users.GET("/:id", middleware.Authorize(rbacService, "users", "read"), handler.GetByID)
		users.POST("", middleware.Authorize(rbacService, "users", "create"), handler.Create)
		users.PUT("/:id", middleware.Authorize(rbacService, "users", "update"), handler.Update)
	}
}
