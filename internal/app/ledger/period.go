// Package ledger turns cash book entries into period reports.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yigit/schooldesk/internal/app/models"
)

// Totals are the sums over a set of entries
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Balance is income minus expense
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// Report is the filtered entries of a period with their totals
type Report struct {
	Query   models.ReportQuery
	Entries []models.LedgerEntry
	Totals  Totals
}

// Matches reports whether an entry dated d belongs to the period selected by q.
//
// No year selects everything. A monthly query without a month also selects everything.
func Matches(q models.ReportQuery, d models.Date) bool {
	if q.Year == 0 {
		return true
	}
	switch q.ReportType {
	case models.ReportYearly:
		return d.IsSet() && d.Year() == q.Year
	case models.ReportMonthly:
		if q.Month == 0 {
			return true
		}
		return d.IsSet() && d.Year() == q.Year && d.Month() == time.Month(q.Month)
	default:
		return true
	}
}

// Filter selects the entries of the queried period, preserving their order, and totals them.
func Filter(entries []models.LedgerEntry, q models.ReportQuery) Report {
	selected := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(q, e.Date) {
			selected = append(selected, e)
		}
	}
	return Report{Query: q, Entries: selected, Totals: Sum(selected)}
}

// Sum totals income and expense entries. Entries of any other type are ignored.
func Sum(entries []models.LedgerEntry) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, e := range entries {
		switch e.Type {
		case models.EntryIncome:
			t.Income = t.Income.Add(e.Amount)
		case models.EntryExpense:
			t.Expense = t.Expense.Add(e.Amount)
		}
	}
	return t
}

// Split partitions entries by type, preserving order
func Split(entries []models.LedgerEntry) (incomes, expenses []models.LedgerEntry) {
	incomes = make([]models.LedgerEntry, 0)
	expenses = make([]models.LedgerEntry, 0)
	for _, e := range entries {
		switch e.Type {
		case models.EntryIncome:
			incomes = append(incomes, e)
		case models.EntryExpense:
			expenses = append(expenses, e)
		}
	}
	return incomes, expenses
}
