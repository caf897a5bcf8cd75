package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "staff-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		repoErr error
		req     dto.LoginRequest
		wantErr error
	}{
		{"opaque token", "abc123", nil, dto.LoginRequest{Username: "admin", Password: "secret"}, nil},
		{"valid jwt", signedToken(t, time.Now().Add(time.Hour)), nil, dto.LoginRequest{Username: "admin", Password: "secret"}, nil},
		{"expired jwt", signedToken(t, time.Now().Add(-time.Hour)), nil, dto.LoginRequest{Username: "admin", Password: "secret"}, apperrors.ErrBackendRejected},
		{"rejected", "", apperrors.ErrInvalidCredentials, dto.LoginRequest{Username: "admin", Password: "wrong"}, apperrors.ErrInvalidCredentials},
		{"blank username", "abc", nil, dto.LoginRequest{Username: " ", Password: "secret"}, apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(&mockAuthRepo{token: tt.token, err: tt.repoErr}, zerolog.Nop())

			resp, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if resp.AccessToken != tt.token || resp.TokenType != "Bearer" {
				t.Errorf("resp = %+v", resp)
			}
		})
	}
}

func TestRegister_DefaultRole(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := NewAuthService(repo, zerolog.Nop())

	if err := svc.Register(context.Background(), dto.RegisterRequest{Username: " clerk ", Password: "secret1"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if repo.registered.Role != DefaultRole || repo.registered.Username != "clerk" {
		t.Errorf("registered = %+v", repo.registered)
	}
}
