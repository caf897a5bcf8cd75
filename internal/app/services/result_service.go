package services

import (
	"context"
	"fmt"

	"github.com/yigit/schooldesk/internal/app/documents"
	"github.com/yigit/schooldesk/internal/app/grading"
	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/repositories"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// ResultService defines the marksheet operations
type ResultService interface {
	Template() models.Result
	Prepare(req dto.ResultRequest) (*dto.ResultDocumentResponse, documents.Document, error)
	SaveResult(ctx context.Context, req dto.ResultRequest) (*models.SavedResult, error)
}

// resultServiceImpl implements ResultService
type resultServiceImpl struct {
	resultRepo    repositories.IResultRepository
	renderer      *documents.Renderer
	defaultSchool string
}

// NewResultService creates a new ResultService. defaultSchool prefills new marksheets.
func NewResultService(resultRepo repositories.IResultRepository, renderer *documents.Renderer, defaultSchool string) ResultService {
	return &resultServiceImpl{
		resultRepo:    resultRepo,
		renderer:      renderer,
		defaultSchool: defaultSchool,
	}
}

// Template returns a blank marksheet with the default subjects
func (s *resultServiceImpl) Template() models.Result {
	return models.NewResultForm(s.defaultSchool).Result()
}

// Prepare validates a submitted marksheet, computes its summary and renders it
func (s *resultServiceImpl) Prepare(req dto.ResultRequest) (*dto.ResultDocumentResponse, documents.Document, error) {
	result, err := s.checked(req)
	if err != nil {
		return nil, documents.Document{}, err
	}

	summary := grading.Summarize(result.Subjects)
	doc := s.renderer.Marksheet(result)

	return &dto.ResultDocumentResponse{
		Result: result,
		Summary: dto.ResultSummary{
			TotalObtained: summary.TotalObtained,
			TotalMax:      summary.TotalMax,
			Percentage:    summary.Percentage,
			Grade:         summary.Grade,
		},
		FileName: doc.FileName,
		Document: doc,
	}, doc, nil
}

// SaveResult stores a validated marksheet
func (s *resultServiceImpl) SaveResult(ctx context.Context, req dto.ResultRequest) (*models.SavedResult, error) {
	result, err := s.checked(req)
	if err != nil {
		return nil, err
	}

	saved, err := s.resultRepo.Create(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("error saving result: %w", err)
	}

	logger.Info().Str("result", saved.ID).Str("student", result.Name).Msg("Result saved")
	return saved, nil
}

// checked runs the submitted marks through the form rules
func (s *resultServiceImpl) checked(req dto.ResultRequest) (models.Result, error) {
	form, err := models.FormFromResult(req.ToModel())
	if err != nil {
		return models.Result{}, err
	}
	result := form.Result()
	if err := result.Validate(); err != nil {
		return models.Result{}, err
	}
	return result, nil
}
