package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/auth"
)

// Context keys set by TokenAuth
const (
	ContextTokenKey   = "token"
	ContextSubjectKey = "subject"
)

// AuthMiddleware requires the bearer token issued by the school API.
// The token is forwarded, not verified; the school API remains the authority.
type AuthMiddleware struct {
	now func() time.Time
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{now: time.Now}
}

// TokenAuth rejects requests without a usable bearer token and attaches it to the request context
func (m *AuthMiddleware) TokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			// plain download links (PDF, xlsx) cannot set headers
			header = c.Query("token")
		}

		token, err := auth.ExtractBearerToken(header)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		info, err := auth.Inspect(token, m.now())
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(ContextTokenKey, token)
		if info.Subject != "" {
			c.Set(ContextSubjectKey, info.Subject)
		}
		c.Request = c.Request.WithContext(auth.WithToken(c.Request.Context(), token))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	code, details := dto.ErrorCodeInvalidToken, "Invalid token"
	switch {
	case errors.Is(err, apperrors.ErrTokenNotFound):
		code, details = dto.ErrorCodeUnauthorized, "Authorization header missing"
	case errors.Is(err, apperrors.ErrTokenExpired):
		code, details = dto.ErrorCodeExpiredToken, "Token has expired"
	}

	detail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}
