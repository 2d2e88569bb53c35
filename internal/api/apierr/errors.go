package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/badancup/internal/services/auth"
	"github.com/mcoot/badancup/internal/services/registration"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Form echoes the submitted values of a rejected registration
	Form *registration.Form `json:"form,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeDuplicatePlayer  = "DUPLICATE_PLAYER"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var regErr *registration.Error
	if errors.As(err, &regErr) {
		form := regErr.Form
		return &httpError{regErr.Status(), APIError{registrationCode(regErr.Kind), regErr.Message, &form}}
	}

	if errors.Is(err, auth.ErrInvalidAccessCode) {
		return NewUnauthorizedError().(*httpError)
	}
	return NewInternalError().(*httpError)
}

func registrationCode(kind registration.Kind) string {
	switch kind {
	case registration.KindValidation:
		return CodeValidationFailed
	case registration.KindDuplicate:
		return CodeDuplicatePlayer
	default:
		return CodeInternalError
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Valid admin access code required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
