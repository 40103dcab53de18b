package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hr-dashboard/internal/leave"
	leaveerrors "hr-dashboard/internal/leave/errors"
	"hr-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn        func(ctx context.Context, userID uint, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	getAllFn        func(ctx context.Context) ([]leave.LeaveResponse, error)
	getAllByUserFn  func(ctx context.Context, userID uint) ([]leave.LeaveResponse, error)
	getPendingFn    func(ctx context.Context) ([]leave.LeaveResponse, error)
	approveFn       func(ctx context.Context, id uint) (leave.LeaveResponse, error)
	rejectFn        func(ctx context.Context, id uint) (leave.LeaveResponse, error)
	adjustBalanceFn func(ctx context.Context, req leave.AdjustBalanceRequest) error
}

func (f *fakeLeaveService) Submit(ctx context.Context, userID uint, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, userID, req)
}

func (f *fakeLeaveService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakeLeaveService) GetAllByUser(ctx context.Context, userID uint) ([]leave.LeaveResponse, error) {
	return f.getAllByUserFn(ctx, userID)
}

func (f *fakeLeaveService) GetPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getPendingFn(ctx)
}

func (f *fakeLeaveService) Approve(ctx context.Context, id uint) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, id)
}

func (f *fakeLeaveService) Reject(ctx context.Context, id uint) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, id)
}

func (f *fakeLeaveService) AdjustBalance(ctx context.Context, req leave.AdjustBalanceRequest) error {
	return f.adjustBalanceFn(ctx, req)
}

func TestLeaveHandler_Submit(t *testing.T) {
	svc := &fakeLeaveService{
		submitFn: func(ctx context.Context, userID uint, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, "2026-03-02", req.StartDate)
			return leave.LeaveResponse{ID: 1, UserID: userID, Days: 3, Status: leave.StatusPending}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"start_date":"2026-03-02","end_date":"2026-03-04","reason":"family event","leave_type":"Casual Leave"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), 7))

	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

// A successful idempotent submit must persist its result under the cache key
// and free the in-flight lock, so a retry replays instead of re-debiting.
func TestLeaveHandler_Submit_StoresIdempotentResult(t *testing.T) {
	resp := leave.LeaveResponse{ID: 1, UserID: 7, Days: 3, Status: leave.StatusPending}
	svc := &fakeLeaveService{
		submitFn: func(ctx context.Context, userID uint, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
			return resp, nil
		},
	}

	rdb, mock := redismock.NewClientMock()
	payload, err := json.Marshal(resp)
	assert.NoError(t, err)
	mock.ExpectSet("idemp:/leaves:7:key-123", payload, 24*time.Hour).SetVal("OK")
	mock.ExpectDel("idemp:/leaves:7:key-123:lock").SetVal(1)

	h := leave.NewHandlerWithRedis(svc, rdb)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"start_date":"2026-03-02","end_date":"2026-03-04","reason":"family event","leave_type":"Casual Leave"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), 7))
	c.Set("idempotency_cache_key", "idemp:/leaves:7:key-123")
	c.Set("idempotency_lock_key", "idemp:/leaves:7:key-123:lock")

	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed run stores nothing but still frees the lock, so the client can
// retry immediately instead of waiting out the lock TTL.
func TestLeaveHandler_Submit_ReleasesLockOnFailure(t *testing.T) {
	svc := &fakeLeaveService{
		submitFn: func(ctx context.Context, userID uint, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		},
	}

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("idemp:/leaves:7:key-123:lock").SetVal(1)

	h := leave.NewHandlerWithRedis(svc, rdb)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"start_date":"2026-03-02","end_date":"2026-03-04","reason":"family event","leave_type":"Casual Leave"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), 7))
	c.Set("idempotency_cache_key", "idemp:/leaves:7:key-123")
	c.Set("idempotency_lock_key", "idemp:/leaves:7:key-123:lock")

	h.Submit(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveHandler_Submit_InsufficientBalance(t *testing.T) {
	svc := &fakeLeaveService{
		submitFn: func(ctx context.Context, userID uint, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"start_date":"2026-03-02","end_date":"2026-03-20","reason":"trip","leave_type":"Casual Leave"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), 7))

	h.Submit(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INSUFFICIENT_BALANCE", env.Error.Code)
}

func TestLeaveHandler_Submit_Unauthenticated(t *testing.T) {
	h := leave.NewHandler(&fakeLeaveService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"start_date":"2026-03-02","end_date":"2026-03-04"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Submit(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLeaveHandler_GetAll_AdminSeesEverything(t *testing.T) {
	svc := &fakeLeaveService{
		getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{{ID: 1, UserID: 7}, {ID: 2, UserID: 8}}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)
	c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), 1))
	c.Set("is_admin", true)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var rows []leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 2)
}

func TestLeaveHandler_GetAll_EmployeeSeesOwnOnly(t *testing.T) {
	svc := &fakeLeaveService{
		getAllByUserFn: func(ctx context.Context, userID uint) ([]leave.LeaveResponse, error) {
			assert.Equal(t, uint(7), userID)
			return []leave.LeaveResponse{{ID: 1, UserID: 7}}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)
	c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), 7))

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var rows []leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)
}

func TestLeaveHandler_Approve_NotFound(t *testing.T) {
	svc := &fakeLeaveService{
		approveFn: func(ctx context.Context, id uint) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/404/approve", nil)
	c.Params = []gin.Param{{Key: "id", Value: "404"}}

	h.Approve(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestLeaveHandler_Approve_InvalidID(t *testing.T) {
	h := leave.NewHandler(&fakeLeaveService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/abc/approve", nil)
	c.Params = []gin.Param{{Key: "id", Value: "abc"}}

	h.Approve(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeaveHandler_AdjustBalance(t *testing.T) {
	svc := &fakeLeaveService{
		adjustBalanceFn: func(ctx context.Context, req leave.AdjustBalanceRequest) error {
			assert.Equal(t, uint(7), req.UserID)
			assert.Equal(t, 15, req.RemainingLeaves)
			assert.Equal(t, 5, req.Delta)
			return nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"user_id":7,"remaining_leaves":15,"delta":5,"reason":"carry-over correction"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/adjust", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.AdjustBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}
