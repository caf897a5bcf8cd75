package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// CertificateType selects the certificate template
type CertificateType string

const (
	CertificateLeaving  CertificateType = "Leaving"
	CertificateTransfer CertificateType = "Transfer"
	CertificateBonafide CertificateType = "Bonafide"
)

// Valid reports whether t is one of the known certificate types
func (t CertificateType) Valid() bool {
	switch t {
	case CertificateLeaving, CertificateTransfer, CertificateBonafide:
		return true
	}
	return false
}

// RequiresDates reports whether admission and leaving dates must be supplied at issue time
func (t CertificateType) RequiresDates() bool {
	return t == CertificateLeaving || t == CertificateTransfer
}

// StudentRef is the studentId of a certificate. The API sends either the bare id
// or the populated student document.
type StudentRef struct {
	ID      string
	Student *Student
}

// Name returns the populated student's name, or "" when not populated
func (r StudentRef) Name() string {
	if r.Student == nil {
		return ""
	}
	return r.Student.Name
}

// MarshalJSON writes the populated student when present, otherwise the id
func (r StudentRef) MarshalJSON() ([]byte, error) {
	if r.Student != nil {
		return json.Marshal(r.Student)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts a string id, a student object or null
func (r *StudentRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = StudentRef{}
	case len(data) > 0 && data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = StudentRef{ID: id}
	case len(data) > 0 && data[0] == '{':
		var s Student
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("studentId: %w", err)
		}
		*r = StudentRef{ID: s.ID, Student: &s}
	default:
		return fmt.Errorf("studentId: unexpected JSON %s", data)
	}
	return nil
}

// Certificate is an issued certificate. Certificates are never edited after issue.
type Certificate struct {
	ID               string          `json:"_id,omitempty"`
	Student          StudentRef      `json:"studentId"`
	Type             CertificateType `json:"type" example:"Leaving"`
	IssueDate        time.Time       `json:"issueDate"`
	AdmissionDate    Date            `json:"admissionDate"`
	LeavingDate      Date            `json:"leavingDate"`
	ReasonForLeaving string          `json:"reasonForLeaving,omitempty"`
	Conduct          string          `json:"conduct,omitempty"`
}

// StudentOrEmpty returns the populated student, or an empty record
func (c Certificate) StudentOrEmpty() Student {
	if c.Student.Student == nil {
		return Student{}
	}
	return *c.Student.Student
}

// NewCertificate is the payload the school API expects when issuing a certificate
type NewCertificate struct {
	StudentID     string          `json:"studentId"`
	Type          CertificateType `json:"type"`
	Reason        string          `json:"reason,omitempty"`
	Conduct       string          `json:"conduct,omitempty"`
	AdmissionDate Date            `json:"admissionDate"`
	LeavingDate   Date            `json:"leavingDate"`
	IssueDate     time.Time       `json:"issueDate"`
}
