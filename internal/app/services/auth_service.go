package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/repositories"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/auth"
)

// DefaultRole is given to staff registered without a role
const DefaultRole = "admin"

// AuthService logs staff in against the school API
type AuthService struct {
	authRepo repositories.IAuthRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(authRepo repositories.IAuthRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{
		authRepo: authRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Login exchanges credentials for a bearer token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Username and password are required.")
	}

	token, err := s.authRepo.Login(ctx, repositories.Credentials{Username: username, Password: req.Password})
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("Login failed")
		return nil, err
	}

	// The API's token is passed through untouched; an already expired JWT is refused early.
	info, err := auth.Inspect(token, s.now())
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("School API issued an unusable token")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBackendRejected, err)
	}

	s.logger.Info().Str("username", username).Bool("opaque", info.Opaque).Msg("User logged in")
	return &dto.TokenResponse{AccessToken: token, TokenType: "Bearer"}, nil
}

// Register creates a staff account
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) error {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = DefaultRole
	}

	creds := repositories.Credentials{Username: strings.TrimSpace(req.Username), Password: req.Password, Role: role}
	if err := s.authRepo.Register(ctx, creds); err != nil {
		s.logger.Warn().Err(err).Str("username", creds.Username).Msg("Registration failed")
		return err
	}

	s.logger.Info().Str("username", creds.Username).Str("role", role).Msg("User registered")
	return nil
}
