package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/schooldesk/internal/app/export"
	"github.com/yigit/schooldesk/internal/app/ledger"
	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/repositories"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// CashbookService defines the cash ledger operations
type CashbookService interface {
	Report(ctx context.Context, q models.ReportQuery) (*dto.LedgerReportResponse, error)
	AddEntry(ctx context.Context, q models.ReportQuery, req dto.LedgerEntryRequest) (*models.LedgerEntry, *dto.LedgerReportResponse, error)
	Workbook(ctx context.Context, q models.ReportQuery) (*bytes.Buffer, string, error)
}

// cashbookServiceImpl implements CashbookService
type cashbookServiceImpl struct {
	cashbookRepo repositories.ICashbookRepository
	now          func() time.Time
}

// NewCashbookService creates a new CashbookService. A nil clock uses time.Now.
func NewCashbookService(cashbookRepo repositories.ICashbookRepository, now func() time.Time) CashbookService {
	if now == nil {
		now = time.Now
	}
	return &cashbookServiceImpl{cashbookRepo: cashbookRepo, now: now}
}

func (s *cashbookServiceImpl) book(ctx context.Context, q models.ReportQuery) (ledger.Book, error) {
	entries, err := s.cashbookRepo.List(ctx)
	if err != nil {
		return ledger.Book{}, fmt.Errorf("error listing cash book: %w", err)
	}
	return ledger.NewBook(entries, q), nil
}

// Report returns the full income and expense lists and the report for q
func (s *cashbookServiceImpl) Report(ctx context.Context, q models.ReportQuery) (*dto.LedgerReportResponse, error) {
	b, err := s.book(ctx, q)
	if err != nil {
		return nil, err
	}
	return toLedgerReport(b), nil
}

// AddEntry records an entry and returns it with the report recomputed to include it.
// Only the saved record returned by the API is appended.
func (s *cashbookServiceImpl) AddEntry(ctx context.Context, q models.ReportQuery, req dto.LedgerEntryRequest) (*models.LedgerEntry, *dto.LedgerReportResponse, error) {
	entry, err := s.entryFromRequest(req)
	if err != nil {
		return nil, nil, err
	}

	b, err := s.book(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	saved, err := s.cashbookRepo.Create(ctx, entry)
	if err != nil {
		return nil, nil, fmt.Errorf("error adding cash book entry: %w", err)
	}

	logger.Info().
		Str("entry", saved.ID).
		Str("type", string(saved.Type)).
		Str("amount", saved.Amount.StringFixed(2)).
		Msg("Cash book entry added")

	return saved, toLedgerReport(b.Append(*saved)), nil
}

// Workbook exports the report for q as xlsx
func (s *cashbookServiceImpl) Workbook(ctx context.Context, q models.ReportQuery) (*bytes.Buffer, string, error) {
	b, err := s.book(ctx, q)
	if err != nil {
		return nil, "", err
	}
	return export.LedgerWorkbook(b.Report())
}

func (s *cashbookServiceImpl) entryFromRequest(req dto.LedgerEntryRequest) (models.LedgerEntry, error) {
	if !req.Type.Valid() {
		return models.LedgerEntry{}, apperrors.NewValidationError("Type must be income or expense.")
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return models.LedgerEntry{}, apperrors.NewValidationError("Description is required.")
	}
	if req.Amount.IsNegative() {
		return models.LedgerEntry{}, apperrors.NewValidationError("Amount cannot be negative.")
	}

	date := req.Date
	if !date.IsSet() {
		date = models.DateOf(s.now())
	}

	return models.LedgerEntry{
		Type:        req.Type,
		Description: desc,
		Amount:      req.Amount,
		Date:        date,
	}, nil
}

func toLedgerReport(b ledger.Book) *dto.LedgerReportResponse {
	r := b.Report()
	incomes, expenses := ledger.Split(b.Entries())
	return &dto.LedgerReportResponse{
		Query:    r.Query,
		Period:   r.Query.Label(),
		Incomes:  incomes,
		Expenses: expenses,
		Entries:  r.Entries,
		Totals: dto.LedgerTotals{
			Income:  r.Totals.Income,
			Expense: r.Totals.Expense,
			Balance: r.Totals.Balance(),
		},
	}
}
