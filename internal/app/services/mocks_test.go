package services

import (
	"context"
	"sync"

	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/app/repositories"
)

type mockStudentRepo struct {
	students []models.Student
	listErr  error
	saveErr  error
	created  *models.Student
	updated  *models.Student
	deleted  string
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Student(nil), m.students...), nil
}

func (m *mockStudentRepo) Create(ctx context.Context, st models.Student) (*models.Student, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	st.ID = "new-id"
	m.created = &st
	return &st, nil
}

func (m *mockStudentRepo) Update(ctx context.Context, st models.Student) (*models.Student, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.updated = &st
	return &st, nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.deleted = id
	return nil
}

type mockCertificateRepo struct {
	certs   []models.Certificate
	err     error
	created *models.NewCertificate
}

func (m *mockCertificateRepo) List(ctx context.Context) ([]models.Certificate, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Certificate(nil), m.certs...), nil
}

func (m *mockCertificateRepo) Create(ctx context.Context, cert models.NewCertificate) (*models.Certificate, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = &cert
	return &models.Certificate{
		ID:               "c-new",
		Type:             cert.Type,
		AdmissionDate:    cert.AdmissionDate,
		LeavingDate:      cert.LeavingDate,
		ReasonForLeaving: cert.Reason,
		Conduct:          cert.Conduct,
	}, nil
}

type mockCashbookRepo struct {
	entries []models.LedgerEntry
	listErr error
	saveErr error
	created *models.LedgerEntry
}

func (m *mockCashbookRepo) List(ctx context.Context) ([]models.LedgerEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.LedgerEntry(nil), m.entries...), nil
}

func (m *mockCashbookRepo) Create(ctx context.Context, e models.LedgerEntry) (*models.LedgerEntry, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.created = &e
	e.ID = "e-new"
	return &e, nil
}

type mockResultRepo struct {
	saved *models.Result
	err   error
}

func (m *mockResultRepo) Create(ctx context.Context, r models.Result) (*models.SavedResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = &r
	return &models.SavedResult{ID: "r1", Result: r}, nil
}

type mockAuthRepo struct {
	token      string
	err        error
	registered *repositories.Credentials
}

func (m *mockAuthRepo) Login(ctx context.Context, creds repositories.Credentials) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func (m *mockAuthRepo) Register(ctx context.Context, creds repositories.Credentials) error {
	if m.err != nil {
		return m.err
	}
	m.registered = &creds
	return nil
}

type mockExportRepo struct {
	mu        sync.Mutex
	records   []models.ExportRecord
	recordErr error
	lastLimit int
}

func (m *mockExportRepo) Record(ctx context.Context, rec models.ExportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockExportRepo) Recent(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	return append([]models.ExportRecord(nil), m.records...), nil
}
