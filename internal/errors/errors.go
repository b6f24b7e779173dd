package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies a failure for the HTTP layer.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindUnexpected      Kind = "unexpected"
)

// FieldError describes a single rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Error is a classified application error. Sentinels below are *Error values,
// so errors.Is matches them through any amount of %w wrapping.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status associated with the error kind.
func (e *Error) StatusCode() int {
	return StatusFor(e.Kind)
}

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation builds a 400 error carrying field level details.
func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// Unexpected wraps an infrastructure failure.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "Server error", Err: err}
}

var (
	// Authentication middleware.
	ErrNoToken                = New(KindUnauthenticated, "No token, authorization denied")
	ErrTokenExpired           = New(KindUnauthenticated, "Token has expired")
	ErrTokenInvalid           = New(KindUnauthenticated, "Token is not valid")
	ErrTokenRevoked           = New(KindUnauthenticated, "Token has been revoked")
	ErrCallerNotFound         = New(KindUnauthenticated, "User not found")
	ErrAccountDeactivated     = New(KindForbidden, "Account is deactivated")
	ErrAuthenticationRequired = New(KindUnauthenticated, "Authentication required")
	ErrAdminRequired          = New(KindForbidden, "Access denied. Admin privileges required.")

	// Accounts.
	ErrInvalidCredentials   = New(KindUnauthenticated, "Invalid credentials")
	ErrUserAlreadyExists    = New(KindConflict, "User already exists with this email")
	ErrInvalidIdentityToken = New(KindUnauthenticated, "Invalid identity token")
	ErrFederatedDisabled    = New(KindUnexpected, "Federated sign-in is not configured")
	ErrNoAccountForEmail    = New(KindNotFound, "No account found with this email")
	ErrInvalidResetToken    = New(KindValidation, "Invalid or expired reset token")
	ErrAccountNotFound      = New(KindNotFound, "User not found")

	// Interviews and resources.
	ErrInterviewNotFound = New(KindNotFound, "Interview not found")
	ErrResourceNotFound  = New(KindNotFound, "Resource not found")
	ErrResourceExists    = New(KindConflict, "A resource with this URL already exists")
)

// StatusFor maps an error kind to an HTTP status code.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// MapError classifies any error. Unknown errors become KindUnexpected.
func MapError(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Unexpected(err)
}

// ToErrorResponse renders the error body. Underlying causes of unexpected
// errors are included only when exposeInternal is set.
func (e *Error) ToErrorResponse(exposeInternal bool) ErrorResponse {
	resp := ErrorResponse{
		Success: false,
		Message: e.Message,
		Errors:  e.Fields,
	}
	if exposeInternal && e.Kind == KindUnexpected && e.Err != nil {
		resp.Error = e.Err.Error()
	}
	return resp
}
