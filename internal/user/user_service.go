package user

import (
	"context"
	"errors"

	usererrors "hr-dashboard/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id uint) (UserResponse, error)
	Update(ctx context.Context, id uint, req UpdateUserRequest) (UserResponse, error)
}

type service struct {
	repo        Repository
	totalLeaves int
	logger      *zap.Logger
}

// NewService builds the user service. totalLeaves is the yearly allowance
// granted to every new account.
func NewService(repo Repository, totalLeaves int, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, totalLeaves: totalLeaves, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("username", req.Username),
		zap.String("department", req.Department),
		zap.Bool("is_admin", req.IsAdmin),
	)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		Username:        req.Username,
		Password:        string(hashed),
		IsAdmin:         req.IsAdmin,
		Department:      req.Department,
		RemainingLeaves: s.totalLeaves,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, usererrors.ErrUsernameTaken) {
			s.logger.Warn("create user duplicate username", zap.String("username", req.Username))
		} else {
			s.logger.Error("create user persist failed", zap.Error(err))
		}
		return UserResponse{}, mapped
	}

	s.logger.Info("create user success",
		zap.Uint("user_id", u.ID),
		zap.String("username", u.Username),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

// Update changes profile fields only. The leave balance is owned by the
// ledger and is deliberately not writable here.
func (s *service) Update(ctx context.Context, id uint, req UpdateUserRequest) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	u.Username = req.Username
	u.Department = req.Department
	u.IsAdmin = req.IsAdmin

	if err := s.repo.Update(ctx, u); err != nil {
		mapped := mapRepositoryError(err)
		s.logger.Error("update user persist failed", zap.Uint("user_id", id), zap.Error(err))
		return UserResponse{}, mapped
	}

	s.logger.Info("update user success", zap.Uint("user_id", id))
	return mapToResponse(*u), nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Department:      u.Department,
		IsAdmin:         u.IsAdmin,
		RemainingLeaves: u.RemainingLeaves,
	}
}
