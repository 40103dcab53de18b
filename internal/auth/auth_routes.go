package auth

import (
	"hr-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.POST("/logout", middleware.AuthMiddleware(jwtSecret), handler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(jwtSecret), handler.Me)
	}
}
