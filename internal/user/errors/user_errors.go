package usererrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		"User with the same username already exists",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
)
