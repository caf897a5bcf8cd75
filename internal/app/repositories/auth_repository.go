package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// Credentials are a staff login
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// IAuthRepository defines the staff authentication operations
type IAuthRepository interface {
	Login(ctx context.Context, creds Credentials) (string, error)
	Register(ctx context.Context, creds Credentials) error
}

// AuthRepository logs staff in through the school API. Sessions are owned by the API.
type AuthRepository struct {
	api *APIClient
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(api *APIClient) *AuthRepository {
	return &AuthRepository{api: api}
}

// Login exchanges credentials for the API's bearer token
func (r *AuthRepository) Login(ctx context.Context, creds Credentials) (string, error) {
	creds.Role = ""
	var resp struct {
		Token string `json:"token"`
	}
	err := r.api.Do(ctx, http.MethodPost, "/auth/login", creds, &resp)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrBackendRejected, apperrors.ErrTokenInvalid, apperrors.ErrResourceNotFound) {
			return "", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, err.Error()).
				WithStatusMsg("Login failed. Please check credentials.")
		}
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: login returned an empty token", apperrors.ErrBackendUnavailable)
	}
	return resp.Token, nil
}

// Register creates a staff account
func (r *AuthRepository) Register(ctx context.Context, creds Credentials) error {
	return r.api.Do(ctx, http.MethodPost, "/auth/register", creds, nil)
}
