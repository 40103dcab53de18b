package interview

import (
	"context"
	"errors"
	"time"

	interviewerrors "hr-dashboard/internal/interview/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateTimeLayout = "2006-01-02 15:04"

// Notifier mirrors the notification enqueuer; delivery is best-effort.
type Notifier interface {
	Send(ctx context.Context, recipient, eventType string, payload any) error
}

type Service interface {
	Schedule(ctx context.Context, req ScheduleInterviewRequest) (InterviewResponse, error)
	GetAll(ctx context.Context) ([]InterviewResponse, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	notifier Notifier
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, notifier Notifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("interview.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("interview.service")
	}
	return &service{db: db, repo: repo, notifier: notifier, logger: l}
}

func (s *service) Schedule(ctx context.Context, req ScheduleInterviewRequest) (InterviewResponse, error) {
	when, err := time.Parse(dateTimeLayout, req.InterviewDate)
	if err != nil {
		return InterviewResponse{}, interviewerrors.ErrInvalidDateFormat
	}

	i := &Interview{
		CandidateName: req.CandidateName,
		InterviewDate: when,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		s.logger.Error("schedule interview failed", zap.Error(err))
		return InterviewResponse{}, err
	}

	s.logger.Info("interview scheduled",
		zap.Uint("interview_id", i.ID),
		zap.String("candidate", i.CandidateName),
	)
	s.notify(ctx, "candidate:"+i.CandidateName, "interview.scheduled", mapToResponse(*i))

	return mapToResponse(*i), nil
}

func (s *service) GetAll(ctx context.Context) ([]InterviewResponse, error) {
	interviews, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]InterviewResponse, len(interviews))
	for i, iv := range interviews {
		resp[i] = mapToResponse(iv)
	}
	return resp, nil
}

// Delete removes one interview and renumbers the survivors to 1..N inside the
// same transaction, then rewinds the sequence so the next insert gets N+1.
// Renumbering walks the IDs in ascending order: every row only ever moves to a
// smaller ID, so no reassignment can collide with a surviving row.
func (s *service) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := qtx.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return interviewerrors.ErrInterviewNotFound
			}
			return err
		}

		ids, err := qtx.ListIDs(ctx)
		if err != nil {
			return err
		}
		for idx, oldID := range ids {
			newID := uint(idx) + 1
			if oldID == newID {
				continue
			}
			if err := qtx.UpdateID(ctx, oldID, newID); err != nil {
				return err
			}
		}

		return qtx.ResetSequence(ctx, uint(len(ids)))
	})
	if err != nil {
		return err
	}

	s.logger.Info("interview deleted", zap.Uint("interview_id", id))
	return nil
}

// DeleteAll clears the table and resets the sequence so the next interview is
// numbered 1 again.
func (s *service) DeleteAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := qtx.DeleteAll(ctx); err != nil {
			return err
		}
		return qtx.ResetSequence(ctx, 0)
	})
	if err != nil {
		return err
	}

	s.logger.Info("all interviews deleted")
	return nil
}

func (s *service) notify(ctx context.Context, recipient, eventType string, payload any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, recipient, eventType, payload); err != nil {
		s.logger.Warn("notification enqueue failed",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func mapToResponse(i Interview) InterviewResponse {
	return InterviewResponse{
		ID:            i.ID,
		CandidateName: i.CandidateName,
		InterviewDate: i.InterviewDate.Format(dateTimeLayout),
	}
}
