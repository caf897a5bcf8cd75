package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// AadhaarPattern is a 12 digit Aadhaar number without separators
	AadhaarPattern = `^\d{12}$`

	// ContactPattern is a 10 digit local mobile number
	ContactPattern = `^\d{10}$`

	// DefaultRegion is used to read local contact numbers
	DefaultRegion = "IN"
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Aadhaar *regexp.Regexp
	Contact *regexp.Regexp
}{
	Aadhaar: regexp.MustCompile(AadhaarPattern),
	Contact: regexp.MustCompile(ContactPattern),
}

// StringValidation checks one string value against length and pattern rules
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a validation for a required value
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate reports whether the value passes. Empty optional values always pass.
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}
	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// ValidAadhaar reports whether s is empty or a 12 digit number
func ValidAadhaar(s string) bool {
	return NewStringValidation(s).WithRequired(false).WithPattern(CompiledPatterns.Aadhaar).Validate()
}

// ValidContact reports whether s is empty or a 10 digit number
func ValidContact(s string) bool {
	return NewStringValidation(s).WithRequired(false).WithPattern(CompiledPatterns.Contact).Validate()
}

// CheckIdentityNumbers validates the optional Aadhaar and contact numbers of a student record.
func CheckIdentityNumbers(aadhaar, contact string) error {
	if !ValidAadhaar(aadhaar) {
		return apperrors.NewCustomError(apperrors.ErrInvalidAadhaar, "Aadhaar number must be 12 digits.").
			WithDetails(map[string]interface{}{"field": "aadharNumber"})
	}
	if !ValidContact(contact) {
		return apperrors.NewCustomError(apperrors.ErrInvalidContact, "Contact number must be 10 digits.").
			WithDetails(map[string]interface{}{"field": "contactNumber"})
	}
	return nil
}

// ContactE164 formats a local contact number in E.164, e.g. 9876543210 => +919876543210.
func ContactE164(contact string) (string, error) {
	if contact == "" {
		return "", nil
	}
	num, err := libphonenumber.Parse(contact, DefaultRegion)
	if err != nil {
		return "", fmt.Errorf("parse contact number: %w", err)
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidContact, contact)
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

// RegisterRules adds the aadhaar and contact tags to v
func RegisterRules(v *validator.Validate) error {
	if err := v.RegisterValidation("aadhaar", func(fl validator.FieldLevel) bool {
		return ValidAadhaar(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register aadhaar rule: %w", err)
	}
	if err := v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return ValidContact(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register contact rule: %w", err)
	}
	return nil
}
