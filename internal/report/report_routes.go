package report

import (
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(jwtSecret))
	{
		reports.GET("/leaves", middleware.Authorize(rbacService, "reports", "read"), handler.LeaveReport)
	}
}
