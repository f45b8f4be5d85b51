package dto

import (
	"net/http"
	"strings"
)

// General error codes used at the HTTP boundary
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall through to the INVALID_ prefix rule, then 500.
var errorCodeHTTPStatus = map[string]int{
	// Input errors
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:        http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule errors
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE": http.StatusUnprocessableEntity,
	"INSUFFICIENT_FUNDS":   http.StatusUnprocessableEntity,
	"BUDGET_EXCEEDED":      http.StatusUnprocessableEntity,
	"FILE_TOO_LARGE":       http.StatusUnprocessableEntity,
	"VALIDATION_ERROR":     http.StatusUnprocessableEntity,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Validation codes follow the INVALID_<FIELD> naming convention and map
// to 422; anything unrecognized is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
