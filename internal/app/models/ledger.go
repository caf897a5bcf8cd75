package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// Amounts are JSON numbers on the wire
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EntryType is the direction of a cash ledger entry
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// Valid reports whether t is income or expense
func (t EntryType) Valid() bool {
	return t == EntryIncome || t == EntryExpense
}

// LedgerEntry is one dated income or expense record
type LedgerEntry struct {
	ID          string          `json:"_id,omitempty"`
	Type        EntryType       `json:"type" example:"expense"`
	Description string          `json:"description" example:"Chalk and dusters"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number" example:"250.50"`
	Date        Date            `json:"date"`
}

// ReportType selects the period granularity of a ledger report
type ReportType string

const (
	ReportMonthly ReportType = "monthly"
	ReportYearly  ReportType = "yearly"
)

// ReportQuery selects the entries that make up a report. It is never sent to the school API.
type ReportQuery struct {
	Year       int        `json:"year,omitempty"`  // 0 means unset
	Month      int        `json:"month,omitempty"` // 1..12, 0 means unset
	ReportType ReportType `json:"reportType"`
}

// ParseReportQuery reads a query from raw query-string values. Empty values are unset.
func ParseReportQuery(year, month, reportType string) (ReportQuery, error) {
	q := ReportQuery{ReportType: ReportMonthly}

	switch rt := ReportType(strings.ToLower(strings.TrimSpace(reportType))); rt {
	case "":
	case ReportMonthly, ReportYearly:
		q.ReportType = rt
	default:
		return q, fmt.Errorf("%w: reportType must be monthly or yearly", apperrors.ErrValidationFailed)
	}

	if year = strings.TrimSpace(year); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y < 1 {
			return q, fmt.Errorf("%w: invalid year %q", apperrors.ErrValidationFailed, year)
		}
		q.Year = y
	}

	if month = strings.TrimSpace(month); month != "" {
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return q, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidationFailed)
		}
		q.Month = m
	}

	return q, nil
}

// Label describes the period, e.g. "2024-03", "2024" or "all"
func (q ReportQuery) Label() string {
	switch {
	case q.Year == 0:
		return "all"
	case q.ReportType == ReportYearly || q.Month == 0:
		return strconv.Itoa(q.Year)
	default:
		return fmt.Sprintf("%04d-%02d", q.Year, q.Month)
	}
}
