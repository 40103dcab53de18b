package auth

import (
	"context"
	"time"

	autherrors "hr-dashboard/internal/auth/errors"
	"hr-dashboard/internal/user"
	usererrors "hr-dashboard/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	Refresh(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID uint) (AuthResponse, error)
}

type service struct {
	users     user.Repository
	jwtSecret string
	logger    *zap.Logger
}

func NewService(users user.Repository, jwtSecret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, jwtSecret: jwtSecret, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, AuthResponse, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// Same error for unknown user and wrong password.
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("username", username))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.Uint("user_id", u.ID), zap.Bool("is_admin", u.IsAdmin))
	return accessToken, refreshToken, mapToResponse(u), nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, uint(userID))
	if err != nil {
		return "", "", AuthResponse{}, usererrors.ErrUserNotFound
	}

	newAccessToken, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapToResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID uint) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return AuthResponse{}, usererrors.ErrUserNotFound
	}
	return mapToResponse(u), nil
}

func (s *service) generateToken(u *user.User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"is_admin": u.IsAdmin,
		"exp":      time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func mapToResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:              u.ID,
		Username:        u.Username,
		Department:      u.Department,
		IsAdmin:         u.IsAdmin,
		RemainingLeaves: u.RemainingLeaves,
	}
}
