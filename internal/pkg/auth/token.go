package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// TokenInfo is what can be read from a bearer token without its signing key
type TokenInfo struct {
	Raw       string
	Subject   string
	ExpiresAt time.Time // zero when the token has no exp claim or is not a JWT
	Opaque    bool      // the token is not a JWT
}

// ExtractBearerToken extracts the token from an Authorization header value.
// A bare token without the Bearer prefix is accepted.
func ExtractBearerToken(header string) (string, error) {
	header = strings.Trim(strings.TrimSpace(header), "\"'")
	if header == "" {
		return "", apperrors.ErrTokenNotFound
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	if header == "" || strings.ContainsAny(header, " \t") {
		return "", apperrors.ErrTokenInvalid
	}
	return header, nil
}

// Inspect reads the claims of token without verifying its signature.
// Non-JWT tokens are returned as opaque. A JWT past its exp claim yields ErrTokenExpired.
func Inspect(token string, now time.Time) (*TokenInfo, error) {
	info := &TokenInfo{Raw: token}

	if strings.Count(token, ".") != 2 {
		info.Opaque = true
		return info, nil
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	info.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		if !now.Before(info.ExpiresAt) {
			return info, apperrors.ErrTokenExpired
		}
	}
	return info, nil
}
