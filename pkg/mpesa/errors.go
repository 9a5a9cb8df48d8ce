package mpesa

import (
	"errors"
	"net/http"
)

const (
	ErrCodeTokenUnavailable = "TOKEN_UNAVAILABLE"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeUnavailable      = "PROVIDER_UNAVAILABLE"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeServerError      = "SERVER_ERROR"
)

var (
	ErrTokenUnavailable = errors.New(ErrCodeTokenUnavailable)
	ErrTimeout          = errors.New(ErrCodeTimeout)
	ErrUnavailable      = errors.New(ErrCodeUnavailable)
	ErrUnauthorized     = errors.New(ErrCodeUnauthorized)
	ErrBadRequest       = errors.New(ErrCodeBadRequest)
	ErrServerError      = errors.New(ErrCodeServerError)
)

var statusErrorMap = map[int]error{
	http.StatusBadRequest:   ErrBadRequest,
	http.StatusUnauthorized: ErrUnauthorized,
	http.StatusForbidden:    ErrUnauthorized,
}

// MapStatusToError translates a non-2xx provider status into a sentinel.
func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}
