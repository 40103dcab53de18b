package assistanterrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrAssistantDisabled = apperror.New(
		apperror.CodeServiceUnavailable,
		"assistant is not configured",
		http.StatusServiceUnavailable,
	)
	ErrAssistantUpstream = apperror.New(
		apperror.CodeServiceUnavailable,
		"assistant request failed",
		http.StatusBadGateway,
	)
	ErrEmptyCompletion = apperror.New(
		apperror.CodeServiceUnavailable,
		"assistant returned an empty completion",
		http.StatusBadGateway,
	)
)
