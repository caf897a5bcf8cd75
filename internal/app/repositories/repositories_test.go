package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/auth"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPIClient(srv.URL+"/api/", 2*time.Second)
}

func TestAPIClient_ForwardsTokenAndDecodes(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/students" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`[{"_id":"1","name":"Asha","dob":"2015-08-20"}]`))
	})

	ctx := auth.WithToken(context.Background(), "abc")
	students, err := NewStudentRepository(api).List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(students) != 1 || students[0].Name != "Asha" || students[0].DOB.Display("") != "20/8/2015" {
		t.Errorf("students = %+v", students)
	}
}

func TestAPIClient_NoTokenNoHeader(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Error("unexpected Authorization header")
		}
		_, _ = w.Write([]byte(`null`))
	})

	students, err := NewStudentRepository(api).List(context.Background())
	if err != nil || students == nil || len(students) != 0 {
		t.Errorf("List() = %v, %v; want empty slice", students, err)
	}
}

func TestAPIClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		userMsg string
	}{
		{"not found", http.StatusNotFound, `{"message":"Student not found"}`, apperrors.ErrStudentNotFound, "Student not found"},
		{"rejected", http.StatusBadRequest, `{"error":"Name is required"}`, apperrors.ErrBackendRejected, "Name is required"},
		{"unauthorized", http.StatusUnauthorized, `Unauthorized`, apperrors.ErrTokenInvalid, "Unauthorized"},
		{"server error", http.StatusInternalServerError, `boom`, apperrors.ErrBackendUnavailable, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := NewStudentRepository(api).Delete(context.Background(), "42")
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if got := apperrors.UserMessage(err, ""); tt.userMsg != "" && got != tt.userMsg {
				t.Errorf("user message = %q, want %q", got, tt.userMsg)
			}
		})
	}
}

func TestAPIClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewCashbookRepository(NewAPIClient(url, time.Second)).List(context.Background())
	if !errors.Is(err, apperrors.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestAPIClient_InvalidJSON(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	_, err := NewCertificateRepository(api).List(context.Background())
	if !errors.Is(err, apperrors.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestStudentRepository_UpdateSendsRecord(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/students/s 1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var s models.Student
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			t.Fatal(err)
		}
		if s.ContactNumber != "9876543210" {
			t.Errorf("contact = %q", s.ContactNumber)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"updated"}`))
	})

	saved, err := NewStudentRepository(api).Update(context.Background(), models.Student{ID: "s 1", Name: "Asha", ContactNumber: "9876543210"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if saved.ID != "s 1" || saved.Name != "Asha" {
		t.Errorf("saved = %+v", saved)
	}
}

func TestCertificateRepository_DecodesBothStudentShapes(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"_id":"c1","studentId":{"_id":"s1","name":"Asha"},"type":"Leaving","issueDate":"2025-06-03T10:00:00Z"},
			{"_id":"c2","studentId":"s2","type":"Bonafide","issueDate":"2025-06-04T10:00:00Z"}
		]`))
	})

	certs, err := NewCertificateRepository(api).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if certs[0].Student.Name() != "Asha" || certs[1].Student.ID != "s2" || certs[1].Student.Student != nil {
		t.Errorf("certs = %+v", certs)
	}
}

func TestCertificateRepository_CreatePayload(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		for _, s := range []string{`"studentId":"s1"`, `"reason":"Relocation"`, `"admissionDate":"2019-06-10"`, `"issueDate":"2025-06-03T10:00:00Z"`} {
			if !strings.Contains(body, s) {
				t.Errorf("payload %s missing %s", body, s)
			}
		}
		_, _ = w.Write([]byte(`{"_id":"c1","studentId":"s1","type":"Leaving","reasonForLeaving":"Relocation"}`))
	})

	saved, err := NewCertificateRepository(api).Create(context.Background(), models.NewCertificate{
		StudentID:     "s1",
		Type:          models.CertificateLeaving,
		Reason:        "Relocation",
		AdmissionDate: models.NewDate(2019, time.June, 10),
		IssueDate:     time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if saved.ID != "c1" || saved.ReasonForLeaving != "Relocation" {
		t.Errorf("saved = %+v", saved)
	}
}

func TestCashbookRepository_Create(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var e models.LedgerEntry
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			t.Fatal(err)
		}
		e.ID = "e1"
		_ = json.NewEncoder(w).Encode(e)
	})

	saved, err := NewCashbookRepository(api).Create(context.Background(), models.LedgerEntry{
		ID:     "client-side",
		Type:   models.EntryIncome,
		Amount: decimal.RequireFromString("1500.50"),
		Date:   models.NewDate(2024, time.March, 2),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if saved.ID != "e1" || !saved.Amount.Equal(decimal.RequireFromString("1500.5")) {
		t.Errorf("saved = %+v", saved)
	}
}

func TestResultRepository_Create(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"r1","name":"Rahul"}`))
	})

	saved, err := NewResultRepository(api).Create(context.Background(), models.Result{Name: "Rahul", Subjects: []models.Subject{{SubjectName: "Maths", MaxMarks: 100}}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if saved.ID != "r1" || len(saved.Subjects) != 1 {
		t.Errorf("saved = %+v", saved)
	}
}

func TestAuthRepository_Login(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var c Credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		if c.Password != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok"}`))
	})
	repo := NewAuthRepository(api)

	token, err := repo.Login(context.Background(), Credentials{Username: "admin", Password: "secret"})
	if err != nil || token != "tok" {
		t.Fatalf("Login() = %q, %v", token, err)
	}

	_, err = repo.Login(context.Background(), Credentials{Username: "admin", Password: "nope"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if msg := apperrors.UserMessage(err, ""); msg != "Login failed. Please check credentials." {
		t.Errorf("user message = %q", msg)
	}
}

func TestExportQueries(t *testing.T) {
	rec := models.ExportRecord{
		ID:        uuid.New(),
		FileName:  "Rahul_Marksheet.pdf",
		Kind:      models.KindMarksheet,
		Channel:   models.ChannelDownload,
		ByteSize:  1024,
		Pages:     1,
		CreatedAt: time.Now(),
	}
	sql, args, err := RecordQuery(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sql, "INSERT INTO document_exports (id,file_name,kind,channel,byte_size,pages,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)") {
		t.Errorf("sql = %s", sql)
	}
	if len(args) != 7 || args[2] != "marksheet" {
		t.Errorf("args = %v", args)
	}

	sql, _, err = RecentQuery(20)
	if err != nil {
		t.Fatal(err)
	}
	if sql != "SELECT id, file_name, kind, channel, byte_size, pages, created_at FROM document_exports ORDER BY created_at DESC LIMIT 20" {
		t.Errorf("sql = %s", sql)
	}
}

func TestNewRepositories_WithoutDatabase(t *testing.T) {
	repos := NewRepositories(NewAPIClient("http://localhost", time.Second), nil)
	if _, ok := repos.ExportRepository.(NoopExportRepository); !ok {
		t.Errorf("export repository = %T", repos.ExportRepository)
	}
	recs, err := repos.ExportRepository.Recent(context.Background(), 10)
	if err != nil || len(recs) != 0 {
		t.Errorf("Recent() = %v, %v", recs, err)
	}
}
