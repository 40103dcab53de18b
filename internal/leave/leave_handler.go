package leave

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	leaveerrors "hr-dashboard/internal/leave/errors"
	"hr-dashboard/internal/shared/apperror"
	"hr-dashboard/internal/shared/contextutil"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyResultTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

// releaseIdempotencyLock frees the in-flight lock set by the idempotency
// middleware so a retry after a failed run is not stuck behind a 409 until
// the lock TTL expires.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk, ok := c.Get("idempotency_lock_key"); ok {
		if key, ok := lk.(string); ok && key != "" {
			_ = h.rdb.Del(c.Request.Context(), key).Err()
		}
	}
}

// cacheIdempotentResult stores the successful result under the middleware's
// cache key so a retried request replays it instead of re-running the write.
func (h *Handler) cacheIdempotentResult(c *gin.Context, result any) {
	if h.rdb == nil {
		return
	}
	if ck, ok := c.Get("idempotency_cache_key"); ok {
		if key, ok := ck.(string); ok && key != "" {
			if payload, err := json.Marshal(result); err == nil {
				_ = h.rdb.Set(c.Request.Context(), key, payload, idempotencyResultTTL).Err()
			}
		}
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, leaveerrors.ErrInvalidLeaveID
	}
	return uint(id), nil
}

func (h *Handler) Submit(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	userID := contextutil.GetUserID(c.Request.Context())
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "authentication required", nil)
		return
	}

	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResult(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll returns every request for admins and only the caller's own rows for
// everyone else.
func (h *Handler) GetAll(c *gin.Context) {
	userID := contextutil.GetUserID(c.Request.Context())
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "authentication required", nil)
		return
	}

	var (
		resp []LeaveResponse
		err  error
	)
	if c.GetBool("is_admin") {
		resp, err = h.service.GetAll(c.Request.Context())
	} else {
		resp, err = h.service.GetAllByUser(c.Request.Context(), userID)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPending(c *gin.Context) {
	resp, err := h.service.GetPending(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AdjustBalance(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if err := h.service.AdjustBalance(c.Request.Context(), req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	result := gin.H{"user_id": req.UserID, "remaining_leaves": req.RemainingLeaves}
	h.cacheIdempotentResult(c, result)
	response.Success(c, http.StatusOK, result, nil)
}
