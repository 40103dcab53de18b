package middleware

import (
	"fmt"
	"net/http"
	"strings"

	autherrors "hr-dashboard/internal/auth/errors"
	"hr-dashboard/internal/rbac"
	"hr-dashboard/internal/shared/contextutil"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the access token (Authorization header or the
// access_token cookie) and populates the request context with the session
// identity: user_id, username, is_admin and the derived role.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		username, ok := claims["username"].(string)
		if !ok || username == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Username not found in token", nil)
			c.Abort()
			return
		}

		isAdmin, _ := claims["is_admin"].(bool)

		c.Set("user_id", uint(userID))
		c.Set("username", username)
		c.Set("is_admin", isAdmin)
		c.Set("role", rbac.RoleFor(isAdmin))

		ctx := contextutil.WithUserID(c.Request.Context(), uint(userID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
