package apperror

import "fmt"

type AppError struct {
	Code       string // machine-readable code (e.g. INSUFFICIENT_BALANCE)
	Message    string // user-facing message
	HTTPStatus int
	Err        error // wrapped original error (optional)
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap supports errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without wrapping.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap creates an AppError around an existing error.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
