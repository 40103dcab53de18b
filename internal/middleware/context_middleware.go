package middleware

import (
	"hr-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger derives a request-scoped logger carrying the request id and
// the authenticated user, and propagates it through the standard context so
// services and repos can log without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		uid := c.GetUint("user_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.Uint("user_id", uid),
		)

		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
