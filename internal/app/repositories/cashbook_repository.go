package repositories

import (
	"context"
	"net/http"

	"github.com/yigit/schooldesk/internal/app/models"
)

// ICashbookRepository defines the cash ledger operations
type ICashbookRepository interface {
	List(ctx context.Context) ([]models.LedgerEntry, error)
	Create(ctx context.Context, entry models.LedgerEntry) (*models.LedgerEntry, error)
}

// CashbookRepository reads and records ledger entries through the school API
type CashbookRepository struct {
	api *APIClient
}

// NewCashbookRepository creates a new cash book repository
func NewCashbookRepository(api *APIClient) *CashbookRepository {
	return &CashbookRepository{api: api}
}

// List returns every ledger entry in API order
func (r *CashbookRepository) List(ctx context.Context) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := r.api.Do(ctx, http.MethodGet, "/cashbook", nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	return entries, nil
}

// Create records an entry and returns the saved record
func (r *CashbookRepository) Create(ctx context.Context, entry models.LedgerEntry) (*models.LedgerEntry, error) {
	entry.ID = ""
	var saved models.LedgerEntry
	if err := r.api.Do(ctx, http.MethodPost, "/cashbook", entry, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
