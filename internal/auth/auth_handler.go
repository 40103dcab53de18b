package auth

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	accessCookieMaxAge  = 15 * 60
	refreshCookieMaxAge = 7 * 24 * 60 * 60
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Login opens a session: it issues the token pair and sets both cookies.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	access, refresh, resp, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.SetCookie("access_token", access, accessCookieMaxAge, "/", "", false, true)
	c.SetCookie("refresh_token", refresh, refreshCookieMaxAge, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"user":         resp,
		"access_token": access,
	}, nil)
}

// Logout destroys the session by expiring both cookies.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)

	h.logger.Info("logout", zap.Uint("user_id", c.GetUint("user_id")))
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		if cookie, err := c.Cookie("refresh_token"); err == nil {
			refreshToken = cookie
		}
	}

	access, refresh, resp, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.SetCookie("access_token", access, accessCookieMaxAge, "/", "", false, true)
	c.SetCookie("refresh_token", refresh, refreshCookieMaxAge, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"user":         resp,
		"access_token": access,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	resp, err := h.service.GetMe(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
