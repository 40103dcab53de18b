package middleware

import (
	"hr-dashboard/internal/rbac"
	"hr-dashboard/internal/shared/apperror"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize enforces the role policy for a resource/action pair. It must run
// after AuthMiddleware, which puts the role into the gin context.
func Authorize(rbacService rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			role = rbac.RoleEmployee
		}

		allowed, err := rbacService.Can(role, resource, action)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
