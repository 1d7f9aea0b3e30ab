package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Code returns the code of an AppError, or INTERNAL_ERROR for any other error.
func Code(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// Common error codes
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeAlreadyExists   = "ALREADY_EXISTS"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeUpstreamFailure = "UPSTREAM_FAILURE"
	ErrCodeRateLimited     = "RATE_LIMIT_EXCEEDED"

	// Storefront codes
	ErrCodeNoBoxAvailable  = "NO_BOX_AVAILABLE"
	ErrCodeEmptyRarityPool = "EMPTY_RARITY_POOL"
	ErrCodeEmptyOffer      = "EMPTY_OFFER"
)
