package leave_test

import (
	"context"
	"testing"
	"time"

	"hr-dashboard/internal/leave"
	leaveerrors "hr-dashboard/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn           func(tx *gorm.DB) leave.Repository
	createFn           func(ctx context.Context, l *leave.Leave) error
	findByIDFn         func(ctx context.Context, id uint) (*leave.Leave, error)
	findAllFn          func(ctx context.Context) ([]leave.Leave, error)
	findAllByUserFn    func(ctx context.Context, userID uint) ([]leave.Leave, error)
	findPendingFn      func(ctx context.Context) ([]leave.Leave, error)
	updateFn           func(ctx context.Context, l *leave.Leave) error
	lockUserBalanceFn  func(ctx context.Context, userID uint) (int, error)
	setUserBalanceFn   func(ctx context.Context, userID uint, balance int) error
	addToUserBalanceFn func(ctx context.Context, userID uint, delta int) error
}

func (f *fakeLeaveRepository) WithTx(tx *gorm.DB) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id uint) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.Leave, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByUser(ctx context.Context, userID uint) ([]leave.Leave, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindPending(ctx context.Context) ([]leave.Leave, error) {
	if f.findPendingFn != nil {
		return f.findPendingFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) LockUserBalance(ctx context.Context, userID uint) (int, error) {
	if f.lockUserBalanceFn != nil {
		return f.lockUserBalanceFn(ctx, userID)
	}
	return 0, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) SetUserBalance(ctx context.Context, userID uint, balance int) error {
	if f.setUserBalanceFn != nil {
		return f.setUserBalanceFn(ctx, userID, balance)
	}
	return nil
}

func (f *fakeLeaveRepository) AddToUserBalance(ctx context.Context, userID uint, delta int) error {
	if f.addToUserBalanceFn != nil {
		return f.addToUserBalanceFn(ctx, userID, delta)
	}
	return nil
}

type recordedNotification struct {
	recipient string
	eventType string
}

type fakeNotifier struct {
	sent []recordedNotification
	err  error
}

func (f *fakeNotifier) Send(ctx context.Context, recipient, eventType string, payload any) error {
	f.sent = append(f.sent, recordedNotification{recipient: recipient, eventType: eventType})
	return f.err
}

type leaveServiceDeps struct {
	sqlMock  sqlmock.Sqlmock
	repo     *fakeLeaveRepository
	notifier *fakeNotifier
	close    func()
}

func setupLeaveServiceTest(t *testing.T, refundOnRejection bool) (leave.Service, *leaveServiceDeps) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	notifier := &fakeNotifier{}
	svc := leave.NewService(gormDB, repo, refundOnRejection, notifier)

	return svc, &leaveServiceDeps{
		sqlMock:  sqlMock,
		repo:     repo,
		notifier: notifier,
		close:    func() { db.Close() },
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, true)

	var debited int
	deps.repo.lockUserBalanceFn = func(ctx context.Context, userID uint) (int, error) {
		assert.Equal(t, uint(7), userID)
		return 10, nil
	}
	deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
		l.ID = 1
		assert.Equal(t, leave.StatusPending, l.Status)
		assert.Equal(t, uint(7), l.UserID)
		return nil
	}
	deps.repo.addToUserBalanceFn = func(ctx context.Context, userID uint, delta int) error {
		debited = delta
		return nil
	}

	resp, err := svc.Submit(ctx, 7, leave.SubmitLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Reason:    "family event",
		LeaveType: "Casual Leave",
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, -3, debited)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	assert.Len(t, deps.notifier.sent, 1)
	assert.Equal(t, "leave.submitted", deps.notifier.sent[0].eventType)
}

func TestLeaveService_Submit_SingleDay(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.lockUserBalanceFn = func(ctx context.Context, userID uint) (int, error) {
		return 1, nil
	}

	resp, err := svc.Submit(ctx, 3, leave.SubmitLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Reason:    "appointment",
		LeaveType: "Sick Leave",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Days)
}

func TestLeaveService_Submit_InsufficientBalance(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, false)

	created := false
	deps.repo.lockUserBalanceFn = func(ctx context.Context, userID uint) (int, error) {
		return 2, nil
	}
	deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
		created = true
		return nil
	}

	_, err := svc.Submit(ctx, 7, leave.SubmitLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Reason:    "trip",
		LeaveType: "Casual Leave",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	assert.False(t, created, "no row may be written when the balance is too low")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_Submit_ExactBalance(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.lockUserBalanceFn = func(ctx context.Context, userID uint) (int, error) {
		return 3, nil
	}

	_, err := svc.Submit(ctx, 7, leave.SubmitLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Reason:    "trip",
		LeaveType: "Casual Leave",
	})

	assert.NoError(t, err)
}

func TestLeaveService_Submit_InvalidDates(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	_, err := svc.Submit(ctx, 7, leave.SubmitLeaveRequest{
		StartDate: "03/02/2026",
		EndDate:   "2026-03-04",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)

	_, err = svc.Submit(ctx, 7, leave.SubmitLeaveRequest{
		StartDate: "2026-03-04",
		EndDate:   "2026-03-02",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_Submit_UnknownUser(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, false)
	deps.repo.lockUserBalanceFn = func(ctx context.Context, userID uint) (int, error) {
		return 0, gorm.ErrRecordNotFound
	}

	_, err := svc.Submit(ctx, 99, leave.SubmitLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrUserNotFound)
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.findByIDFn = func(ctx context.Context, id uint) (*leave.Leave, error) {
		return &leave.Leave{ID: id, UserID: 7, Status: leave.StatusPending}, nil
	}

	var updatedStatus string
	deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
		updatedStatus = l.Status
		return nil
	}

	resp, err := svc.Approve(ctx, 4)

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, updatedStatus)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.Len(t, deps.notifier.sent, 1)
	assert.Equal(t, "leave.status.changed", deps.notifier.sent[0].eventType)
	assert.Equal(t, "user:7", deps.notifier.sent[0].recipient)
}

func TestLeaveService_Approve_NotPending(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, false)
	deps.repo.findByIDFn = func(ctx context.Context, id uint) (*leave.Leave, error) {
		return &leave.Leave{ID: id, UserID: 7, Status: leave.StatusRejected}, nil
	}

	_, err := svc.Approve(ctx, 4)

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	assert.Empty(t, deps.notifier.sent)
}

func TestLeaveService_Approve_NotFound(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, false)

	_, err := svc.Approve(ctx, 404)

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestLeaveService_Reject_NoRefundByDefault(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.findByIDFn = func(ctx context.Context, id uint) (*leave.Leave, error) {
		return &leave.Leave{
			ID:        id,
			UserID:    7,
			Status:    leave.StatusPending,
			StartDate: mustDate(t, "2026-03-02"),
			EndDate:   mustDate(t, "2026-03-04"),
		}, nil
	}

	refunded := false
	deps.repo.addToUserBalanceFn = func(ctx context.Context, userID uint, delta int) error {
		refunded = true
		return nil
	}

	resp, err := svc.Reject(ctx, 4)

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	assert.False(t, refunded, "rejection must not credit days back when refunds are off")
}

func TestLeaveService_Reject_RefundEnabled(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, true)
	defer deps.close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.findByIDFn = func(ctx context.Context, id uint) (*leave.Leave, error) {
		return &leave.Leave{
			ID:        id,
			UserID:    7,
			Status:    leave.StatusPending,
			StartDate: mustDate(t, "2026-03-02"),
			EndDate:   mustDate(t, "2026-03-04"),
		}, nil
	}

	var refund int
	deps.repo.addToUserBalanceFn = func(ctx context.Context, userID uint, delta int) error {
		assert.Equal(t, uint(7), userID)
		refund = delta
		return nil
	}

	_, err := svc.Reject(ctx, 4)

	assert.NoError(t, err)
	assert.Equal(t, 3, refund)
}

func TestLeaveService_AdjustBalance(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.lockUserBalanceFn = func(ctx context.Context, userID uint) (int, error) {
		return 10, nil
	}

	var newBalance int
	deps.repo.setUserBalanceFn = func(ctx context.Context, userID uint, balance int) error {
		newBalance = balance
		return nil
	}

	var audit *leave.Leave
	deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
		audit = l
		return nil
	}

	err := svc.AdjustBalance(ctx, leave.AdjustBalanceRequest{
		UserID:          7,
		RemainingLeaves: 15,
		Delta:           5,
		Reason:          "carry-over correction",
	})

	assert.NoError(t, err)
	assert.Equal(t, 15, newBalance)
	if assert.NotNil(t, audit, "a non-zero delta must leave an audit row") {
		assert.Equal(t, leave.AdjustmentLeaveType, audit.LeaveType)
		assert.Equal(t, leave.StatusApproved, audit.Status)
		assert.Equal(t, uint(7), audit.UserID)
		assert.Equal(t, audit.StartDate, audit.EndDate)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_AdjustBalance_ZeroDelta(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.lockUserBalanceFn = func(ctx context.Context, userID uint) (int, error) {
		return 15, nil
	}

	created := false
	deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
		created = true
		return nil
	}

	err := svc.AdjustBalance(ctx, leave.AdjustBalanceRequest{
		UserID:          7,
		RemainingLeaves: 15,
		Delta:           0,
		Reason:          "no-op",
	})

	assert.NoError(t, err)
	assert.False(t, created, "a zero delta must not write an audit row")
}

func TestLeaveService_AdjustBalance_UnknownUser(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	expectTx(t, deps.sqlMock, false)

	err := svc.AdjustBalance(ctx, leave.AdjustBalanceRequest{
		UserID:          99,
		RemainingLeaves: 15,
		Delta:           5,
	})

	assert.ErrorIs(t, err, leaveerrors.ErrUserNotFound)
}

func TestLeaveService_GetAllByUser(t *testing.T) {
	ctx := context.Background()

	svc, deps := setupLeaveServiceTest(t, false)
	defer deps.close()

	deps.repo.findAllByUserFn = func(ctx context.Context, userID uint) ([]leave.Leave, error) {
		assert.Equal(t, uint(7), userID)
		return []leave.Leave{
			{
				ID:        2,
				UserID:    7,
				Status:    leave.StatusPending,
				StartDate: mustDate(t, "2026-04-01"),
				EndDate:   mustDate(t, "2026-04-03"),
				User:      &leave.LeaveUser{ID: 7, Username: "dian", Department: "Engineering"},
			},
		}, nil
	}

	resp, err := svc.GetAllByUser(ctx, 7)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, 3, resp[0].Days)
	assert.Equal(t, "dian", resp[0].Username)
	assert.Equal(t, "Engineering", resp[0].Department)
}

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", v)
	assert.NoError(t, err)
	return parsed
}
