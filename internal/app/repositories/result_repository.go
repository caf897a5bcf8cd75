package repositories

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yigit/schooldesk/internal/app/models"
)

// IResultRepository defines the exam result operations
type IResultRepository interface {
	Create(ctx context.Context, result models.Result) (*models.SavedResult, error)
}

// ResultRepository stores marksheets through the school API
type ResultRepository struct {
	api *APIClient
}

// NewResultRepository creates a new result repository
func NewResultRepository(api *APIClient) *ResultRepository {
	return &ResultRepository{api: api}
}

// Create saves a marksheet
func (r *ResultRepository) Create(ctx context.Context, result models.Result) (*models.SavedResult, error) {
	var raw json.RawMessage
	if err := r.api.Do(ctx, http.MethodPost, "/results", result, &raw); err != nil {
		return nil, err
	}

	saved := &models.SavedResult{Result: result}
	var body struct {
		ID string `json:"_id"`
	}
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		saved.ID = body.ID
	}
	return saved, nil
}
