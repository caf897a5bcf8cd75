package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/schooldesk/internal/app/documents"
	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/repositories"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// CertificateService defines the certificate operations
type CertificateService interface {
	ListCertificates(ctx context.Context) ([]dto.CertificateView, error)
	IssueCertificate(ctx context.Context, req dto.CertificateRequest) (*dto.CertificateView, error)
	GetCertificate(ctx context.Context, id string) (*models.Certificate, error)
	RenderCertificate(ctx context.Context, id string) (documents.Document, error)
}

// certificateServiceImpl implements CertificateService
type certificateServiceImpl struct {
	certRepo    repositories.ICertificateRepository
	studentRepo repositories.IStudentRepository
	renderer    *documents.Renderer
	now         func() time.Time
}

// NewCertificateService creates a new CertificateService. A nil clock uses time.Now.
func NewCertificateService(
	certRepo repositories.ICertificateRepository,
	studentRepo repositories.IStudentRepository,
	renderer *documents.Renderer,
	now func() time.Time,
) CertificateService {
	if now == nil {
		now = time.Now
	}
	return &certificateServiceImpl{
		certRepo:    certRepo,
		studentRepo: studentRepo,
		renderer:    renderer,
		now:         now,
	}
}

// ListCertificates returns every issued certificate with its list summary
func (s *certificateServiceImpl) ListCertificates(ctx context.Context) ([]dto.CertificateView, error) {
	certs, err := s.certRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing certificates: %w", err)
	}

	views := make([]dto.CertificateView, 0, len(certs))
	for _, c := range certs {
		views = append(views, toCertificateView(c))
	}
	return views, nil
}

// IssueCertificate stamps the issue date and stores a new certificate
func (s *certificateServiceImpl) IssueCertificate(ctx context.Context, req dto.CertificateRequest) (*dto.CertificateView, error) {
	if strings.TrimSpace(req.StudentID) == "" {
		return nil, apperrors.NewValidationError("Please select a student.")
	}
	if !req.Type.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown certificate type %q.", req.Type))
	}
	if req.Type.RequiresDates() && (!req.AdmissionDate.IsSet() || !req.LeavingDate.IsSet()) {
		return nil, apperrors.NewValidationError("Admission and leaving dates are required for this certificate.").
			WithDetails(map[string]interface{}{"type": req.Type})
	}
	if req.AdmissionDate.IsSet() && req.LeavingDate.IsSet() && req.LeavingDate.Time().Before(req.AdmissionDate.Time()) {
		return nil, apperrors.NewValidationError("Leaving date cannot be before the admission date.")
	}

	payload := models.NewCertificate{
		StudentID:     req.StudentID,
		Type:          req.Type,
		Reason:        strings.TrimSpace(req.Reason),
		Conduct:       strings.TrimSpace(req.Conduct),
		AdmissionDate: req.AdmissionDate,
		LeavingDate:   req.LeavingDate,
		IssueDate:     s.now().UTC(),
	}

	saved, err := s.certRepo.Create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("error issuing certificate: %w", err)
	}
	if saved.IssueDate.IsZero() {
		saved.IssueDate = payload.IssueDate
	}
	if saved.Student.ID == "" && saved.Student.Student == nil {
		saved.Student = models.StudentRef{ID: req.StudentID}
	}

	logger.Info().Str("certificate", saved.ID).Str("type", string(saved.Type)).Msg("Certificate issued")
	view := toCertificateView(*saved)
	return &view, nil
}

// GetCertificate finds a certificate by id, populating its student when the API sent only the id
func (s *certificateServiceImpl) GetCertificate(ctx context.Context, id string) (*models.Certificate, error) {
	certs, err := s.certRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing certificates: %w", err)
	}

	for i := range certs {
		if certs[i].ID != id {
			continue
		}
		c := certs[i]
		if c.Student.Student == nil && c.Student.ID != "" {
			s.populateStudent(ctx, &c)
		}
		return &c, nil
	}

	return nil, apperrors.NewCustomError(apperrors.ErrCertificateNotFound, fmt.Sprintf("certificate %s not found", id)).
		WithStatusMsg("Certificate not found")
}

// RenderCertificate renders the certificate's document
func (s *certificateServiceImpl) RenderCertificate(ctx context.Context, id string) (documents.Document, error) {
	c, err := s.GetCertificate(ctx, id)
	if err != nil {
		return documents.Document{}, err
	}
	return s.renderer.Certificate(*c), nil
}

// populateStudent fills in the student record. A failed lookup leaves the certificate
// as it is and the document falls back to N/A values.
func (s *certificateServiceImpl) populateStudent(ctx context.Context, c *models.Certificate) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("certificate", c.ID).Msg("Could not load student for certificate")
		return
	}
	for i := range students {
		if students[i].ID == c.Student.ID {
			st := students[i]
			c.Student.Student = &st
			return
		}
	}
}

func toCertificateView(c models.Certificate) dto.CertificateView {
	st := c.StudentOrEmpty()
	name, class := st.Name, st.ClassName
	if name == "" {
		name = "N/A"
	}
	if class == "" {
		class = "N/A"
	}
	return dto.CertificateView{
		Certificate: c,
		Summary: fmt.Sprintf("%s Certificate for Student: %s (Class: %s) issued on %s",
			c.Type, name, class, models.DateOf(c.IssueDate).Display("N/A")),
		FileName: documents.CertificateFileName(c),
	}
}
