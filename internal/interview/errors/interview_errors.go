package interviewerrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid interview date, expected YYYY-MM-DD HH:MM",
		http.StatusBadRequest,
	)
	ErrInterviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"interview not found",
		http.StatusNotFound,
	)
	ErrInvalidInterviewID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid interview id",
		http.StatusBadRequest,
	)
)
