package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	leaveerrors "hr-dashboard/internal/leave/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	// AdjustmentLeaveType marks the synthetic audit entry written by an
	// administrative balance override.
	AdjustmentLeaveType = "Administrative Adjustment"
)

// Notifier is the fire-and-forget notification collaborator. Delivery is not
// guaranteed and failures never abort the ledger operation.
type Notifier interface {
	Send(ctx context.Context, recipient, eventType string, payload any) error
}

type Service interface {
	Submit(ctx context.Context, userID uint, req SubmitLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetAllByUser(ctx context.Context, userID uint) ([]LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	Approve(ctx context.Context, id uint) (LeaveResponse, error)
	Reject(ctx context.Context, id uint) (LeaveResponse, error)
	AdjustBalance(ctx context.Context, req AdjustBalanceRequest) error
}

type service struct {
	db                *gorm.DB
	repo              Repository
	refundOnRejection bool
	notifier          Notifier
	logger            *zap.Logger
}

// NewService builds the leave ledger. refundOnRejection selects the rejection
// policy: when false, rejected days stay debited.
func NewService(db *gorm.DB, repo Repository, refundOnRejection bool, notifier Notifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:                db,
		repo:              repo,
		refundOnRejection: refundOnRejection,
		notifier:          notifier,
		logger:            l,
	}
}

func (s *service) Submit(ctx context.Context, userID uint, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.Uint("user_id", userID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.String("leave_type", req.LeaveType),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	days := daysInclusive(startDate, endDate)
	l := &Leave{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    StatusPending,
		LeaveType: req.LeaveType,
	}

	// Insert and debit are one unit: the row lock on the user serializes
	// concurrent submissions against the same balance.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		balance, err := qtx.LockUserBalance(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrUserNotFound
			}
			return err
		}
		if days > balance {
			s.logger.Warn("submit leave insufficient balance",
				zap.Uint("user_id", userID),
				zap.Int("requested_days", days),
				zap.Int("remaining", balance),
			)
			return leaveerrors.ErrInsufficientBalance
		}

		if err := qtx.Create(ctx, l); err != nil {
			return err
		}
		return qtx.AddToUserBalance(ctx, userID, -days)
	})
	if err != nil {
		if !isAppError(err) {
			s.logger.Error("submit leave failed", zap.Uint("user_id", userID), zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.Uint("leave_id", l.ID),
		zap.Uint("user_id", userID),
		zap.Int("days", days),
	)
	s.notify(ctx, userID, "leave.submitted", mapToResponse(*l))

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAllByUser(ctx context.Context, userID uint) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Approve(ctx context.Context, id uint) (LeaveResponse, error) {
	return s.transitionStatus(ctx, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id uint) (LeaveResponse, error) {
	return s.transitionStatus(ctx, id, StatusRejected)
}

// transitionStatus moves a pending request to its terminal status. Rejection
// credits the debited days back only when the refund policy is enabled.
func (s *service) transitionStatus(ctx context.Context, id uint, targetStatus string) (LeaveResponse, error) {
	var l *Leave

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		l, err = qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		if l.Status != StatusPending {
			s.logger.Warn("transition leave status invalid",
				zap.Uint("leave_id", id),
				zap.String("from_status", l.Status),
				zap.String("to_status", targetStatus),
			)
			return leaveerrors.ErrInvalidStatusTransition
		}

		l.Status = targetStatus
		if err := qtx.Update(ctx, l); err != nil {
			return err
		}

		if targetStatus == StatusRejected && s.refundOnRejection {
			days := daysInclusive(l.StartDate, l.EndDate)
			if err := qtx.AddToUserBalance(ctx, l.UserID, days); err != nil {
				return err
			}
			s.logger.Info("rejection refund applied",
				zap.Uint("leave_id", id),
				zap.Uint("user_id", l.UserID),
				zap.Int("days", days),
			)
		}
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("transition leave status success",
		zap.Uint("leave_id", id),
		zap.String("status", targetStatus),
	)
	s.notify(ctx, l.UserID, "leave.status.changed", mapToResponse(*l))

	return mapToResponse(*l), nil
}

func (s *service) AdjustBalance(ctx context.Context, req AdjustBalanceRequest) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		balance, err := qtx.LockUserBalance(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrUserNotFound
			}
			return err
		}

		// The new balance and the delta are independent inputs; a mismatch
		// is flagged but neither value is corrected.
		if req.RemainingLeaves != balance+req.Delta {
			s.logger.Warn("adjustment inputs inconsistent",
				zap.Uint("user_id", req.UserID),
				zap.Int("old_balance", balance),
				zap.Int("delta", req.Delta),
				zap.Int("new_balance", req.RemainingLeaves),
			)
		}

		if err := qtx.SetUserBalance(ctx, req.UserID, req.RemainingLeaves); err != nil {
			return err
		}

		if req.Delta != 0 {
			today := time.Now().UTC().Truncate(24 * time.Hour)
			audit := &Leave{
				UserID:    req.UserID,
				StartDate: today,
				EndDate:   today,
				Reason:    req.Reason,
				Status:    StatusApproved,
				LeaveType: AdjustmentLeaveType,
			}
			if err := qtx.Create(ctx, audit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("balance adjusted",
		zap.Uint("user_id", req.UserID),
		zap.Int("new_balance", req.RemainingLeaves),
		zap.Int("delta", req.Delta),
	)
	return nil
}

func (s *service) notify(ctx context.Context, userID uint, eventType string, payload any) {
	if s.notifier == nil {
		return
	}
	recipient := fmt.Sprintf("user:%d", userID)
	if err := s.notifier.Send(ctx, recipient, eventType, payload); err != nil {
		s.logger.Warn("notification enqueue failed",
			zap.String("event_type", eventType),
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// daysInclusive counts both endpoints: 2024-01-01..2024-01-03 is 3 days.
func daysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func isAppError(err error) bool {
	switch {
	case errors.Is(err, leaveerrors.ErrUserNotFound),
		errors.Is(err, leaveerrors.ErrInsufficientBalance),
		errors.Is(err, leaveerrors.ErrLeaveNotFound),
		errors.Is(err, leaveerrors.ErrInvalidStatusTransition):
		return true
	}
	return false
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   l.EndDate.Format("2006-01-02"),
		Days:      daysInclusive(l.StartDate, l.EndDate),
		Reason:    l.Reason,
		Status:    l.Status,
		LeaveType: l.LeaveType,
	}
	if l.User != nil {
		resp.Username = l.User.Username
		resp.Department = l.User.Department
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
