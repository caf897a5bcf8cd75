package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/auth"
	"github.com/yigit/schooldesk/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(err error) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { HandleAPIError(c, err) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
		wantMsg    string
	}{
		{"marks above max", fmt.Errorf("%w: Maths (101 > 100)", apperrors.ErrMarksExceedMaximum), http.StatusBadRequest, dto.ErrorCodeMarksExceedMax, "Marks obtained cannot exceed Max Marks."},
		{"validation message", apperrors.NewValidationError("Description is required."), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Description is required."},
		{"aadhaar", validation.CheckIdentityNumbers("12", ""), http.StatusBadRequest, dto.ErrorCodeInvalidAadhaar, "Aadhaar number must be 12 digits."},
		{"login failed", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "401").WithStatusMsg("Login failed. Please check credentials."), http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Login failed. Please check credentials."},
		{"student missing", fmt.Errorf("wrap: %w", apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
		{"print busy", apperrors.ErrExportInProgress, http.StatusConflict, dto.ErrorCodeExportInProgress, "A print job is already running. Please wait."},
		{"no surface", apperrors.ErrSurfaceMissing, http.StatusUnprocessableEntity, dto.ErrorCodeSurfaceMissing, "Nothing to export."},
		{"raster", fmt.Errorf("%w: frame too large", apperrors.ErrRasterFailed), http.StatusInternalServerError, dto.ErrorCodeRasterFailed, "Failed to generate PDF"},
		{"backend down", fmt.Errorf("%w: dial tcp", apperrors.ErrBackendUnavailable), http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "The school server is not reachable. Please try again."},
		{"timeout", fmt.Errorf("call: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, dto.ErrorCodeExternalServiceError, "The request timed out."},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.err)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeError(t, w)
			if resp.Success || resp.Error == nil {
				t.Fatalf("resp = %+v", resp)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Error.Code, tt.wantCode)
			}
			if resp.Error.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", resp.Error.Message, tt.wantMsg)
			}
		})
	}
}

func TestHandleAPIError_FieldFromDetails(t *testing.T) {
	resp := decodeError(t, serveError(validation.CheckIdentityNumbers("", "123")))
	if resp.Error.Field != "contactNumber" {
		t.Errorf("field = %q", resp.Error.Field)
	}
}

func TestHandleAPIError_Canceled(t *testing.T) {
	if w := serveError(context.Canceled); w.Code != StatusClientClosedRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func tokenRouter(seen *string) *gin.Engine {
	r := gin.New()
	r.Use(NewAuthMiddleware().TokenAuth())
	r.GET("/x", func(c *gin.Context) {
		*seen, _ = auth.TokenFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestTokenAuth(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
		wantToken  string
		wantCode   dto.ErrorCode
	}{
		{"bearer", "Bearer abc123", "", http.StatusNoContent, "abc123", ""},
		{"bare token", "abc123", "", http.StatusNoContent, "abc123", ""},
		{"query token on download link", "", "abc123", http.StatusNoContent, "abc123", ""},
		{"missing", "", "", http.StatusUnauthorized, "", dto.ErrorCodeUnauthorized},
		{"malformed", "Bearer a b", "", http.StatusUnauthorized, "", dto.ErrorCodeInvalidToken},
		{"expired", "Bearer " + expired, "", http.StatusUnauthorized, "", dto.ErrorCodeExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r := tokenRouter(&seen)

			target := "/x"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if code := decodeError(t, w).Error.Code; code != tt.wantCode {
					t.Errorf("code = %s, want %s", code, tt.wantCode)
				}
				return
			}
			if seen != tt.wantToken {
				t.Errorf("forwarded token = %q, want %q", seen, tt.wantToken)
			}
		})
	}
}

func TestBindJSON_CustomRules(t *testing.T) {
	if err := RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators() error = %v", err)
	}
	if err := RegisterValidators(); err != nil {
		t.Fatalf("second RegisterValidators() error = %v", err)
	}

	r := gin.New()
	r.POST("/students", func(c *gin.Context) {
		var req dto.StudentRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusCreated)
	})

	tests := []struct {
		body       string
		wantStatus int
		wantMsg    string
	}{
		{`{"name":"Asha","aadharNumber":"123412341234","contactNumber":"9876543210"}`, http.StatusCreated, ""},
		{`{"name":"Asha"}`, http.StatusCreated, ""},
		{`{"name":"Asha","aadharNumber":"1234"}`, http.StatusBadRequest, "Aadhaar number must be 12 digits."},
		{`{"name":"Asha","contactNumber":"98765"}`, http.StatusBadRequest, "Contact number must be 10 digits."},
		{`{"aadharNumber":"123412341234"}`, http.StatusBadRequest, "Name is required"},
		{`{"name":`, http.StatusBadRequest, "Invalid request format"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.body, w.Code, tt.wantStatus)
			continue
		}
		if tt.wantMsg != "" {
			if msg := decodeError(t, w).Error.Message; msg != tt.wantMsg {
				t.Errorf("%s: message = %q, want %q", tt.body, msg, tt.wantMsg)
			}
		}
	}
}
