package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/auth"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

const (
	// maxErrorBody bounds how much of an error response is read
	maxErrorBody = 64 << 10
	// DefaultTimeout applies when no backend timeout is configured
	DefaultTimeout = 15 * time.Second
)

// APIClient calls the school REST API with the caller's bearer token
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient creates a client for baseURL, e.g. http://localhost:5000/api
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError is the error body shape of the school API
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Do sends body as JSON and decodes the response into out. Either may be nil.
func (c *APIClient) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := auth.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("School API unreachable")
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("School API call")

	if resp.StatusCode >= 300 {
		return statusError(resp, method, path)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s response: %v", apperrors.ErrBackendUnavailable, method, path, err)
	}
	return nil
}

func statusError(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := ""
	var body apiError
	if json.Unmarshal(raw, &body) == nil {
		msg = body.Message
		if msg == "" {
			msg = body.Error
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}

	var target error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		target = apperrors.ErrResourceNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		target = apperrors.ErrTokenInvalid
	case resp.StatusCode >= 500:
		target = apperrors.ErrBackendUnavailable
	default:
		target = apperrors.ErrBackendRejected
	}

	logger.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("message", msg).
		Msg("School API returned an error")

	ce := apperrors.NewCustomError(target, fmt.Sprintf("%s %s: %d %s", method, path, resp.StatusCode, msg))
	if msg != "" && target != apperrors.ErrBackendUnavailable {
		ce = ce.WithStatusMsg(msg)
	}
	return ce.WithDetails(map[string]interface{}{"status": resp.StatusCode})
}
