package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yigit/schooldesk/internal/app/models"
)

// APIResponse wraps every successful response body
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAPIResponse builds a successful response carrying data
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data, Timestamp: time.Now()}
}

// SuccessResponse represents a bare acknowledgement
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// StudentView is a student as listed in the UI
type StudentView struct {
	models.Student
	// ContactE164 is the contact number in international form, empty when it cannot be parsed
	ContactE164 string `json:"contactE164,omitempty" example:"+919876543210"`
}

// StudentListResponse is one page of the filtered student list
type StudentListResponse struct {
	Students   []StudentView  `json:"students"`
	Search     string         `json:"search,omitempty"`
	Pagination PaginationInfo `json:"pagination"`
}

// CertificateView is a line of the issued certificates list
type CertificateView struct {
	models.Certificate
	Summary  string `json:"summary" example:"Leaving Certificate for Student: Asha (Class: 5th) issued on 1/6/2024"`
	FileName string `json:"fileName" example:"Leaving_Certificate_Asha.pdf"`
}

// LedgerTotals are the aggregates of a report
type LedgerTotals struct {
	Income  decimal.Decimal `json:"income" swaggertype:"number"`
	Expense decimal.Decimal `json:"expense" swaggertype:"number"`
	Balance decimal.Decimal `json:"balance" swaggertype:"number"`
}

// LedgerReportResponse is the cash book page: the full lists split by type and the filtered report
type LedgerReportResponse struct {
	Query    models.ReportQuery   `json:"query"`
	Period   string               `json:"period" example:"2024-03"`
	Incomes  []models.LedgerEntry `json:"incomes"`
	Expenses []models.LedgerEntry `json:"expenses"`
	Entries  []models.LedgerEntry `json:"entries"`
	Totals   LedgerTotals         `json:"totals"`
}

// ResultSummary is the computed part of a marksheet
type ResultSummary struct {
	TotalObtained float64 `json:"totalObtained" example:"125"`
	TotalMax      float64 `json:"totalMax" example:"150"`
	Percentage    float64 `json:"percentage" example:"83.33"`
	Grade         string  `json:"grade" example:"A"`
}

// ResultDocumentResponse is a rendered marksheet with its summary
type ResultDocumentResponse struct {
	Result   models.Result `json:"result"`
	Summary  ResultSummary `json:"summary"`
	FileName string        `json:"fileName"`
	Document interface{}   `json:"document"`
}

// PrintJobResponse acknowledges a finished print job
type PrintJobResponse struct {
	JobID    string `json:"jobId"`
	FileName string `json:"fileName"`
	Pages    int    `json:"pages"`
	Device   string `json:"device" example:"spool"`
}

// TokenResponse carries the bearer token issued by the school API
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
}
