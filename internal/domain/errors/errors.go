package errors

import (
	"net/http"

	"shoplocal/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors by business code, so a WithDetails copy still compares
// equal to its catalog sentinel under errors.Is.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. The auth messages mirror the fixed user-facing
// strings the marketplace shows for the corresponding WordPress error codes.
var (
	// Authentication errors mapped from upstream WordPress codes
	ErrInvalidUsername = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_USERNAME",
		"No account found with that username or email address.",
		"",
	)

	ErrIncorrectPassword = NewBaseError(
		http.StatusUnauthorized,
		"INCORRECT_PASSWORD",
		"The password you entered is incorrect.",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password.",
		"",
	)

	ErrLoginRouteMissing = NewBaseError(
		http.StatusBadGateway,
		"LOGIN_ROUTE_MISSING",
		"The login service is not available on the server.",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"That username is already registered.",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"An account already exists for that email address.",
		"",
	)

	ErrRegistrationFailed = NewBaseError(
		http.StatusBadGateway,
		"REGISTRATION_FAILED",
		"Registration failed. Please try again.",
		"",
	)

	ErrSocialLoginUnavailable = NewBaseError(
		http.StatusBadGateway,
		"SOCIAL_LOGIN_UNAVAILABLE",
		"Social sign-in is not configured on the server.",
		"",
	)

	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"You must be signed in to do that.",
		"",
	)

	// Catalog errors
	ErrListingNotFound = NewBaseError(
		http.StatusNotFound,
		"LISTING_NOT_FOUND",
		"Listing not found.",
		"",
	)

	ErrVendorNotFound = NewBaseError(
		http.StatusNotFound,
		"VENDOR_NOT_FOUND",
		"Vendor not found.",
		"",
	)

	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"That item is not in your cart.",
		"",
	)

	// Upstream failure taxonomy: transport failures and unparsable bodies
	// both surface as one generic retry-less message.
	ErrUpstreamUnavailable = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_UNAVAILABLE",
		"Something went wrong talking to the server. Please try again.",
		"",
	)

	ErrUpstreamMalformed = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_MALFORMED",
		"The server returned an unexpected response.",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found.",
		"",
	)
)

// UpstreamError wraps a structured WordPress error body whose code has no
// fixed mapping; the upstream message is shown verbatim.
type UpstreamError struct {
	code    string
	message string
}

// NewUpstreamError creates an error carrying the upstream code and message.
func NewUpstreamError(code, message string) AppError {
	if message == "" {
		message = ErrUpstreamUnavailable.Message()
	}

	return &UpstreamError{code: code, message: message}
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code
func (e *UpstreamError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *UpstreamError) ErrorCode() string {
	return "UPSTREAM_ERROR"
}

// Message returns the user-friendly error message
func (e *UpstreamError) Message() string {
	return e.message
}

// Details returns the upstream error code
func (e *UpstreamError) Details() string {
	return e.code
}
