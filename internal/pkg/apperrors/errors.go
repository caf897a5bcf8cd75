package apperrors

import "errors"

// Resource errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
)

// Validation errors, caught before anything is sent to the backend
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrBadRequest         = errors.New("bad request")
	ErrMarksExceedMaximum = errors.New("marks obtained cannot exceed max marks")
	ErrNoSubjects         = errors.New("at least one subject is required")
	ErrInvalidAadhaar     = errors.New("aadhaar number must be 12 digits")
	ErrInvalidContact     = errors.New("contact number must be 10 digits")
	ErrUnknownField       = errors.New("unknown field")
)

// Backend errors
var (
	ErrBackendUnavailable  = errors.New("backend unavailable")
	ErrBackendRejected     = errors.New("backend rejected the request")
	ErrStudentNotFound     = errors.New("student not found")
	ErrCertificateNotFound = errors.New("certificate not found")
)

// Rendering and export errors
var (
	ErrSurfaceMissing   = errors.New("document surface is missing")
	ErrRasterFailed     = errors.New("failed to rasterize document")
	ErrPDFFailed        = errors.New("failed to generate PDF")
	ErrExportInProgress = errors.New("an export for this document is already running")
	ErrPrintFailed      = errors.New("failed to print document")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with a user-facing message
func NewValidationError(message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}

// UserMessage returns the message that is safe to show to the person using the tool.
func UserMessage(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		if ce.StatusMsg != "" {
			return ce.StatusMsg
		}
		if ce.Message != "" {
			return ce.Message
		}
	}
	return fallback
}
