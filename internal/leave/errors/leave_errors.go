package leaveerrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be on or after start_date",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"requested days exceed the remaining leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be approved or rejected",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
)
