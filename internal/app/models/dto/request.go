package dto

import (
	"github.com/shopspring/decimal"
	"github.com/yigit/schooldesk/internal/app/models"
)

// LoginRequest represents login credentials forwarded to the school API
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a staff registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin teacher"`
}

// StudentRequest is the admission form. Aadhaar and contact numbers are optional on edit.
type StudentRequest struct {
	Name          string      `json:"name" binding:"required"`
	ParentName    string      `json:"parentName"`
	DOB           models.Date `json:"dob"`
	ClassName     string      `json:"className"`
	Address       string      `json:"address"`
	AdmissionDate models.Date `json:"admissionDate"`
	AadharNumber  string      `json:"aadharNumber" binding:"aadhaar"`
	ContactNumber string      `json:"contactNumber" binding:"contact"`
}

// ToModel converts the form into a student record
func (r StudentRequest) ToModel(id string) models.Student {
	return models.Student{
		ID:            id,
		Name:          r.Name,
		ParentName:    r.ParentName,
		DOB:           r.DOB,
		ClassName:     r.ClassName,
		Address:       r.Address,
		AdmissionDate: r.AdmissionDate,
		AadharNumber:  r.AadharNumber,
		ContactNumber: r.ContactNumber,
	}
}

// StudentFieldEdit is one typed field change
type StudentFieldEdit struct {
	Field string `json:"field" binding:"required" example:"contactNumber"`
	Value string `json:"value" example:"9876543210"`
}

// StudentPatchRequest applies field edits in order
type StudentPatchRequest struct {
	Edits []StudentFieldEdit `json:"edits" binding:"required,min=1,dive"`
}

// CertificateRequest issues a new certificate
type CertificateRequest struct {
	StudentID     string                 `json:"studentId" binding:"required"`
	Type          models.CertificateType `json:"type" binding:"required,oneof=Leaving Transfer Bonafide"`
	Reason        string                 `json:"reason"`
	Conduct       string                 `json:"conduct"`
	AdmissionDate models.Date            `json:"admissionDate"`
	LeavingDate   models.Date            `json:"leavingDate"`
}

// LedgerEntryRequest records a cash book entry. An unset date means today.
type LedgerEntryRequest struct {
	Type        models.EntryType `json:"type" binding:"required,oneof=income expense"`
	Description string           `json:"description" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" swaggertype:"number"`
	Date        models.Date      `json:"date"`
}

// ResultRequest is a submitted marksheet
type ResultRequest struct {
	SchoolName string           `json:"schoolName"`
	Name       string           `json:"name"`
	ClassName  string           `json:"className"`
	RollNo     string           `json:"rollNo"`
	Subjects   []models.Subject `json:"subjects" binding:"required,min=1"`
}

// ToModel converts the request into a marksheet
func (r ResultRequest) ToModel() models.Result {
	return models.Result{
		SchoolName: r.SchoolName,
		Name:       r.Name,
		ClassName:  r.ClassName,
		RollNo:     r.RollNo,
		Subjects:   append([]models.Subject(nil), r.Subjects...),
	}
}
