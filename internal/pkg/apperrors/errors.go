package apperrors

import "errors"

// Resource errors
var (
	ErrEstudanteNotFound = errors.New("estudante not found")
	ErrUsuarioNotFound   = errors.New("usuario not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateEntry    = errors.New("duplicate entry")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenMissing       = errors.New("token not provided")
)

// Authorization errors
var (
	ErrPermissionDenied = errors.New("permission denied")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Infrastructure errors
var (
	ErrDatabase = errors.New("database error")
)

// CustomError carries a sentinel plus a human-readable message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation failure with a message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewBadRequestError creates a bad request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewDatabaseError wraps a driver failure so handlers answer with the
// database error code instead of a generic 500.
func NewDatabaseError(message string, err error) error {
	if err != nil {
		message = message + ": " + err.Error()
	}
	return &CustomError{Err: ErrDatabase, Message: message}
}
