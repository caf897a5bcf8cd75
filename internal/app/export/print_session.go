package export

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yigit/schooldesk/internal/app/documents"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// PrintSession sends one selected document at a time to the printer. The selection is
// cleared when the job returns, whatever the outcome.
type PrintSession struct {
	pipeline *Pipeline
	printer  Printer

	mu       sync.Mutex
	selected *documents.Document
}

// NewPrintSession creates a print session
func NewPrintSession(pipeline *Pipeline, printer Printer) *PrintSession {
	return &PrintSession{pipeline: pipeline, printer: printer}
}

// Device names the configured printer
func (s *PrintSession) Device() string {
	return s.printer.Name()
}

// Selected returns the document currently being printed
func (s *PrintSession) Selected() (documents.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return documents.Document{}, false
	}
	return *s.selected, true
}

// Print exports doc and hands it to the printer. A second call while a job is running
// fails with ErrExportInProgress.
func (s *PrintSession) Print(ctx context.Context, doc documents.Document, opts Options) (*PrintJob, error) {
	s.mu.Lock()
	if s.selected != nil {
		s.mu.Unlock()
		return nil, apperrors.ErrExportInProgress
	}
	s.selected = &doc
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.selected = nil
		s.mu.Unlock()
	}()

	art, err := s.pipeline.Export(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	job := PrintJob{ID: uuid.New(), FileName: art.FileName, PDF: art.PDF, Pages: art.Pages}
	if err := s.printer.Print(ctx, job); err != nil {
		logger.Error().Err(err).Str("job", job.ID.String()).Str("device", s.printer.Name()).Msg("Print job failed")
		return nil, err
	}

	logger.Info().Str("job", job.ID.String()).Str("file", job.FileName).Str("device", s.printer.Name()).Msg("Print job sent")
	return &job, nil
}
