package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/schooldesk/internal/app/documents"
	"github.com/yigit/schooldesk/internal/app/export"
	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/repositories"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// MaxHistory caps the export history page
const MaxHistory = 100

// ExportSettings are the capture parameters per document family
type ExportSettings struct {
	CertificateScale int
	MarksheetScale   int
	DownloadSettle   time.Duration
	PrintSettle      time.Duration
}

// ExportService defines the PDF download and print operations
type ExportService interface {
	Download(ctx context.Context, doc documents.Document) (*export.Artifact, error)
	Print(ctx context.Context, doc documents.Document) (*dto.PrintJobResponse, error)
	History(ctx context.Context, limit int) ([]models.ExportRecord, error)
}

// exportServiceImpl implements ExportService
type exportServiceImpl struct {
	pipeline   *export.Pipeline
	session    *export.PrintSession
	exportRepo repositories.IExportRepository
	settings   ExportSettings
	now        func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(
	pipeline *export.Pipeline,
	session *export.PrintSession,
	exportRepo repositories.IExportRepository,
	settings ExportSettings,
) ExportService {
	return &exportServiceImpl{
		pipeline:   pipeline,
		session:    session,
		exportRepo: exportRepo,
		settings:   settings,
		now:        time.Now,
	}
}

func (s *exportServiceImpl) scale(doc documents.Document) int {
	if doc.Kind == models.KindMarksheet {
		return s.settings.MarksheetScale
	}
	return s.settings.CertificateScale
}

// Download exports doc as a PDF
func (s *exportServiceImpl) Download(ctx context.Context, doc documents.Document) (*export.Artifact, error) {
	art, err := s.pipeline.Export(ctx, doc, export.Options{Scale: s.scale(doc), Settle: s.settings.DownloadSettle})
	if err != nil {
		return nil, fmt.Errorf("error exporting %s: %w", doc.FileName, err)
	}
	s.record(ctx, art.FileName, art.Kind, models.ChannelDownload, len(art.PDF), art.Pages)
	return art, nil
}

// Print sends doc to the configured printer
func (s *exportServiceImpl) Print(ctx context.Context, doc documents.Document) (*dto.PrintJobResponse, error) {
	job, err := s.session.Print(ctx, doc, export.Options{Scale: s.scale(doc), Settle: s.settings.PrintSettle})
	if err != nil {
		return nil, fmt.Errorf("error printing %s: %w", doc.FileName, err)
	}
	s.record(ctx, job.FileName, doc.Kind, models.ChannelPrint, len(job.PDF), job.Pages)

	return &dto.PrintJobResponse{
		JobID:    job.ID.String(),
		FileName: job.FileName,
		Pages:    job.Pages,
		Device:   s.session.Device(),
	}, nil
}

// History lists the latest exports
func (s *exportServiceImpl) History(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if limit <= 0 || limit > MaxHistory {
		limit = MaxHistory
	}
	records, err := s.exportRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing export history: %w", err)
	}
	return records, nil
}

// record keeps the export history. A failed insert does not fail the export.
func (s *exportServiceImpl) record(ctx context.Context, fileName string, kind models.DocumentKind, channel models.ExportChannel, size, pages int) {
	rec := models.ExportRecord{
		ID:        uuid.New(),
		FileName:  fileName,
		Kind:      kind,
		Channel:   channel,
		ByteSize:  int64(size),
		Pages:     pages,
		CreatedAt: s.now().UTC(),
	}
	if err := s.exportRepo.Record(ctx, rec); err != nil {
		logger.Warn().Err(err).Str("file", fileName).Msg("Could not record export")
	}
}
