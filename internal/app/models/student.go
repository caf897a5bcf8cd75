package models

import (
	"fmt"
	"strings"

	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// Student is an admission record owned by the school API
type Student struct {
	ID            string `json:"_id,omitempty" example:"65f1c0a2e4b0a1b2c3d4e5f6"`
	Name          string `json:"name" example:"Asha Patel"`
	ParentName    string `json:"parentName,omitempty" example:"Ramesh Patel"`
	DOB           Date   `json:"dob"`
	ClassName     string `json:"className,omitempty" example:"5th"`
	Address       string `json:"address,omitempty"`
	AdmissionDate Date   `json:"admissionDate"`
	AadharNumber  string `json:"aadharNumber,omitempty" example:"123412341234"` // 12 digits
	ContactNumber string `json:"contactNumber,omitempty" example:"9876543210"`  // 10 digits
}

// StudentField names one editable attribute of a Student
type StudentField string

const (
	StudentFieldName          StudentField = "name"
	StudentFieldParentName    StudentField = "parentName"
	StudentFieldDOB           StudentField = "dob"
	StudentFieldClassName     StudentField = "className"
	StudentFieldAddress       StudentField = "address"
	StudentFieldAdmissionDate StudentField = "admissionDate"
	StudentFieldAadharNumber  StudentField = "aadharNumber"
	StudentFieldContactNumber StudentField = "contactNumber"
)

// StudentFields lists every editable field in form order
var StudentFields = []StudentField{
	StudentFieldName,
	StudentFieldParentName,
	StudentFieldDOB,
	StudentFieldClassName,
	StudentFieldAddress,
	StudentFieldAdmissionDate,
	StudentFieldAadharNumber,
	StudentFieldContactNumber,
}

// ParseStudentField resolves a wire field name
func ParseStudentField(s string) (StudentField, error) {
	for _, f := range StudentFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownField, s)
}

// With returns a copy of s with field set to value. Date fields are parsed.
func (s Student) With(field StudentField, value string) (Student, error) {
	switch field {
	case StudentFieldName:
		s.Name = value
	case StudentFieldParentName:
		s.ParentName = value
	case StudentFieldClassName:
		s.ClassName = value
	case StudentFieldAddress:
		s.Address = value
	case StudentFieldAadharNumber:
		s.AadharNumber = value
	case StudentFieldContactNumber:
		s.ContactNumber = value
	case StudentFieldDOB, StudentFieldAdmissionDate:
		d, err := ParseDate(value)
		if err != nil {
			return s, fmt.Errorf("%w: %s: %v", apperrors.ErrValidationFailed, field, err)
		}
		if field == StudentFieldDOB {
			s.DOB = d
		} else {
			s.AdmissionDate = d
		}
	default:
		return s, fmt.Errorf("%w: %q", apperrors.ErrUnknownField, field)
	}
	return s, nil
}

// Matches reports whether term occurs, case-insensitively, in the name, parent name or class.
// An empty term matches every student.
func (s Student) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.ParentName), term) ||
		strings.Contains(strings.ToLower(s.ClassName), term)
}
