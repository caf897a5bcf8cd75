package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError turns a binding or validation error into an ErrorDetail.
// Field level failures are listed in Details.
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	var fields FieldErrors
	for _, fe := range verrs {
		fields.Add(fe.Field(), formatFieldError(fe))
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails([]ErrorDetail(fields))
	if len(fields) == 1 {
		detail.Message = fields[0].Message
		detail.Field = fields[0].Field
	}
	return detail
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "aadhaar":
		return "Aadhaar number must be 12 digits."
	case "contact":
		return "Contact number must be 10 digits."
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
