package repositories

import (
	"context"
	"net/http"

	"github.com/yigit/schooldesk/internal/app/models"
)

// ICertificateRepository defines the certificate operations
type ICertificateRepository interface {
	List(ctx context.Context) ([]models.Certificate, error)
	Create(ctx context.Context, cert models.NewCertificate) (*models.Certificate, error)
}

// CertificateRepository reads and issues certificates through the school API
type CertificateRepository struct {
	api *APIClient
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(api *APIClient) *CertificateRepository {
	return &CertificateRepository{api: api}
}

// List returns every issued certificate, usually with the student populated
func (r *CertificateRepository) List(ctx context.Context) ([]models.Certificate, error) {
	var certs []models.Certificate
	if err := r.api.Do(ctx, http.MethodGet, "/certificates", nil, &certs); err != nil {
		return nil, err
	}
	if certs == nil {
		certs = []models.Certificate{}
	}
	return certs, nil
}

// Create issues a certificate and returns the saved record
func (r *CertificateRepository) Create(ctx context.Context, cert models.NewCertificate) (*models.Certificate, error) {
	var saved models.Certificate
	if err := r.api.Do(ctx, http.MethodPost, "/certificates", cert, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
