package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// StatusClientClosedRequest is reported when the caller went away before the response
const StatusClientClosedRequest = 499

type errorRule struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorRules is checked in order; specific errors come before the ones they wrap.
var errorRules = []errorRule{
	{apperrors.ErrMarksExceedMaximum, http.StatusBadRequest, dto.ErrorCodeMarksExceedMax, "Marks obtained cannot exceed Max Marks."},
	{apperrors.ErrNoSubjects, http.StatusBadRequest, dto.ErrorCodeNoSubjects, "At least one subject is required."},
	{apperrors.ErrInvalidAadhaar, http.StatusBadRequest, dto.ErrorCodeInvalidAadhaar, "Aadhaar number must be 12 digits."},
	{apperrors.ErrInvalidContact, http.StatusBadRequest, dto.ErrorCodeInvalidContact, "Contact number must be 10 digits."},
	{apperrors.ErrUnknownField, http.StatusBadRequest, dto.ErrorCodeUnknownField, "Unknown student field."},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},

	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Login failed. Please check credentials."},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Session expired. Please log in again."},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Authentication required"},

	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrCertificateNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Certificate not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{apperrors.ErrExportInProgress, http.StatusConflict, dto.ErrorCodeExportInProgress, "A print job is already running. Please wait."},
	{apperrors.ErrSurfaceMissing, http.StatusUnprocessableEntity, dto.ErrorCodeSurfaceMissing, "Nothing to export."},
	{apperrors.ErrRasterFailed, http.StatusInternalServerError, dto.ErrorCodeRasterFailed, "Failed to generate PDF"},
	{apperrors.ErrPDFFailed, http.StatusInternalServerError, dto.ErrorCodePDFFailed, "Failed to generate PDF"},
	{apperrors.ErrPrintFailed, http.StatusInternalServerError, dto.ErrorCodePrintFailed, "Failed to print document"},

	{apperrors.ErrBackendRejected, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "The school server rejected the request."},
	{apperrors.ErrBackendUnavailable, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "The school server is not reachable. Please try again."},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, dto.ErrorCodeExternalServiceError, "The request timed out."},
}

// HandleAPIError writes the error response for err
func HandleAPIError(c *gin.Context, err error) {
	if errors.Is(err, context.Canceled) {
		c.AbortWithStatus(StatusClientClosedRequest)
		return
	}

	status, detail := errorDetail(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// HandleBindError writes a 400 for a request body that could not be bound or validated
func HandleBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

func errorDetail(err error) (int, *dto.ErrorDetail) {
	for _, r := range errorRules {
		if !errors.Is(err, r.target) {
			continue
		}
		detail := dto.NewErrorDetail(r.code, apperrors.UserMessage(err, r.message))

		var ce *apperrors.CustomError
		if errors.As(err, &ce) && ce.Details != nil {
			if field, ok := ce.Details["field"].(string); ok {
				detail.WithField(field)
			}
			detail.WithDetails(ce.Details)
		} else if r.status < http.StatusInternalServerError && err.Error() != detail.Message {
			detail.WithDetails(err.Error())
		}
		return r.status, detail.WithSeverity(dto.SeverityFor(r.status))
	}

	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
}
