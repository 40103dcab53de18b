package autherrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid username or password",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)

	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid refresh token",
		http.StatusUnauthorized,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not generate token",
		http.StatusInternalServerError,
	)
)
