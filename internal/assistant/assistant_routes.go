package assistant

import (
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string) {
	ai := r.Group("/assistant")
	ai.Use(middleware.AuthMiddleware(jwtSecret))
	// Upstream completions are slow and metered, keep per-user traffic down.
	ai.Use(middleware.RateLimitByUser(rate.Limit(0.5), 3))
	{
		ai.POST("/chat", middleware.Authorize(rbacService, "assistant", "use"), handler.Chat)
		ai.POST("/match-resume", middleware.Authorize(rbacService, "assistant", "use"), handler.MatchResume)
	}
}
