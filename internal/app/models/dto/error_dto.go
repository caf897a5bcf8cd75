package dto

import (
	"net/http"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeTokenNotFound      ErrorCode = "AUTH_007"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"

	// Resource errors
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeConflict         ErrorCode = "RES_004"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeMarksExceedMax   ErrorCode = "VAL_002"
	ErrorCodeNoSubjects       ErrorCode = "VAL_003"
	ErrorCodeInvalidAadhaar   ErrorCode = "VAL_004"
	ErrorCodeInvalidContact   ErrorCode = "VAL_005"
	ErrorCodeUnknownField     ErrorCode = "VAL_006"
	ErrorCodeBadRequest       ErrorCode = "VAL_007"

	// Document export errors
	ErrorCodeSurfaceMissing   ErrorCode = "DOC_001"
	ErrorCodeRasterFailed     ErrorCode = "DOC_002"
	ErrorCodePDFFailed        ErrorCode = "DOC_003"
	ErrorCodeExportInProgress ErrorCode = "DOC_004"
	ErrorCodePrintFailed      ErrorCode = "DOC_005"

	// Server errors
	ErrorCodeInternalServer       ErrorCode = "SRV_001"
	ErrorCodeExternalServiceError ErrorCode = "SRV_003"
)

// ErrorSeverity tells the UI how loudly to report an error
type ErrorSeverity string

const (
	ErrorSeverityWarning  ErrorSeverity = "WARNING"
	ErrorSeverityError    ErrorSeverity = "ERROR"
	ErrorSeverityCritical ErrorSeverity = "CRITICAL"
)

// SeverityFor grades an HTTP status: user mistakes are warnings, server side failures critical.
func SeverityFor(status int) ErrorSeverity {
	switch {
	case status >= http.StatusInternalServerError:
		return ErrorSeverityCritical
	case status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return ErrorSeverityWarning
	default:
		return ErrorSeverityError
	}
}

// ErrorDetail is the error half of an ErrorResponse
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"VAL_002"`
	Message  string        `json:"message" example:"Marks obtained cannot exceed Max Marks."`
	Field    string        `json:"field,omitempty" example:"subjects"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorDetail creates an ERROR severity detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message, Severity: ErrorSeverityError}
}

func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse wraps a detail into a response body
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{Error: errorDetail, Timestamp: time.Now()}
}

// FieldErrors lists per-field validation failures in request order
type FieldErrors []ErrorDetail

// Add appends one failure for field
func (f *FieldErrors) Add(field, message string) {
	*f = append(*f, ErrorDetail{
		Code:     ErrorCodeValidationFailed,
		Message:  message,
		Field:    field,
		Severity: ErrorSeverityError,
	})
}
