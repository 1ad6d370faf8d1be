package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents the stable machine-readable error codes the API
// returns. The set mirrors the auth/validation/database taxonomy of the
// panel's HTTP surface.
type ErrorCode string

const (
	// Authentication
	ErrorCodeNotAuthenticated      ErrorCode = "NOT_AUTHENTICATED"
	ErrorCodeUserNotFound          ErrorCode = "USER_NOT_FOUND"
	ErrorCodeAuthenticationFailure ErrorCode = "AUTHENTICATION_FAILURE"
	ErrorCodeInvalidCredentials    ErrorCode = "INVALID_CREDENTIALS"
	ErrorCodeTokenExpired          ErrorCode = "TOKEN_EXPIRED"

	// Authorization
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden    ErrorCode = "FORBIDDEN"

	// Resources and validation
	ErrorCodeValidationError ErrorCode = "VALIDATION_ERROR"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeDuplicateEntry  ErrorCode = "DUPLICATE_ENTRY"

	// Server
	ErrorCodeDatabaseError  ErrorCode = "DATABASE_ERROR"
	ErrorCodeInternalServer ErrorCode = "INTERNAL_SERVER_ERROR"
)

// FieldError describes a single invalid field: its name, the offending
// value and a message.
type FieldError struct {
	Param   string      `json:"param" example:"nota"`
	Value   interface{} `json:"value,omitempty" example:"11"`
	Message string      `json:"message" example:"Nota deve estar entre 0 e 10"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Success bool         `json:"success" example:"false"`
	Code    ErrorCode    `json:"code" example:"VALIDATION_ERROR"`
	Message string       `json:"message" example:"Erro de validação"`
	Details string       `json:"details,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// NewErrorResponse builds an error payload with a code and message.
func NewErrorResponse(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{Success: false, Code: code, Message: message}
}

// WithDetails attaches detail text. Callers only do this in development
// mode so internals never leak in production.
func (e *ErrorResponse) WithDetails(details string) *ErrorResponse {
	e.Details = details
	return e
}

// WithFieldErrors attaches the collected field violations.
func (e *ErrorResponse) WithFieldErrors(errs []FieldError) *ErrorResponse {
	e.Errors = errs
	return e
}

// ValidationErrors accumulates every violation found in a request so the
// caller sees all invalid fields in one response.
type ValidationErrors struct {
	Errors []FieldError
}

// Add records a violation.
func (v *ValidationErrors) Add(param string, value interface{}, message string) {
	v.Errors = append(v.Errors, FieldError{Param: param, Value: value, Message: message})
}

// HasErrors reports whether any violation was recorded.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Response converts the collected violations into a 400 payload.
func (v *ValidationErrors) Response() *ErrorResponse {
	return NewErrorResponse(ErrorCodeValidationError, "Erro de validação").WithFieldErrors(v.Errors)
}

// HandleBindingError converts a gin binding error (validator violations or
// malformed JSON) into an error payload listing every invalid field.
func HandleBindingError(err error) *ErrorResponse {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		collected := &ValidationErrors{}
		for _, fieldErr := range validationErrs {
			collected.Add(fieldErr.Field(), fieldErr.Value(), validationMessage(fieldErr))
		}
		return collected.Response()
	}
	return NewErrorResponse(ErrorCodeValidationError, "Corpo da requisição inválido").WithDetails(err.Error())
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " é obrigatório"
	case "email":
		return e.Field() + " deve ser um e-mail válido"
	case "min":
		return e.Field() + " deve ter no mínimo " + e.Param()
	case "max":
		return e.Field() + " deve ter no máximo " + e.Param()
	case "oneof":
		return e.Field() + " deve ser um de: " + e.Param()
	default:
		return e.Field() + " é inválido"
	}
}
