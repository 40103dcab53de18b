package report

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) LeaveReport(c *gin.Context) {
	resp, err := h.service.LeaveReport(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("leave report failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
