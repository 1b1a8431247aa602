package dto

import "net/http"

// Domain error codes surfaced by the API. The application layer speaks in
// these codes; the mapping below decides the HTTP status.
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidState       = "INVALID_STATE"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"

	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	ErrCodeInvalidUsername    = "INVALID_USERNAME"
	ErrCodeInvalidPassword    = "INVALID_PASSWORD"
	ErrCodeInvalidEmail       = "INVALID_EMAIL"

	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
	ErrCodePersistenceFailure: http.StatusInternalServerError,

	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountDeactivated: http.StatusForbidden,
	ErrCodeInvalidUsername:    http.StatusBadRequest,
	ErrCodeInvalidPassword:    http.StatusBadRequest,
	ErrCodeInvalidEmail:       http.StatusBadRequest,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,
}

// GetHTTPStatus maps an error code to its HTTP status, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
