package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/repositories"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/helpers"
	"github.com/yigit/schooldesk/internal/pkg/logger"
	"github.com/yigit/schooldesk/internal/pkg/validation"
)

// StudentService defines the admission records operations
type StudentService interface {
	ListStudents(ctx context.Context, search string, page, size int) (*dto.StudentListResponse, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	CreateStudent(ctx context.Context, req dto.StudentRequest) (*dto.StudentView, error)
	UpdateStudent(ctx context.Context, id string, req dto.StudentRequest) (*dto.StudentView, error)
	PatchStudent(ctx context.Context, id string, edits []dto.StudentFieldEdit) (*dto.StudentView, error)
	DeleteStudent(ctx context.Context, id string) error
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

// ListStudents filters students by search term and returns one page
func (s *studentServiceImpl) ListStudents(ctx context.Context, search string, page, size int) (*dto.StudentListResponse, error) {
	all, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	search = strings.TrimSpace(search)
	matched := make([]models.Student, 0, len(all))
	for _, st := range all {
		if st.Matches(search) {
			matched = append(matched, st)
		}
	}

	pagination := helpers.NewPaginationInfo(len(matched), page, size)
	start, end := helpers.CalculateSliceIndices(pagination.CurrentPage, pagination.PageSize, len(matched))

	views := make([]dto.StudentView, 0, end-start)
	for _, st := range matched[start:end] {
		views = append(views, toStudentView(st))
	}

	return &dto.StudentListResponse{
		Students:   views,
		Search:     search,
		Pagination: pagination,
	}, nil
}

// GetStudent finds a student by id
func (s *studentServiceImpl) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	all, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound, fmt.Sprintf("student %s not found", id)).
		WithStatusMsg("Student not found")
}

// CreateStudent admits a new student
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req dto.StudentRequest) (*dto.StudentView, error) {
	student := req.ToModel("")
	if err := validateStudent(student); err != nil {
		return nil, err
	}

	saved, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Str("student", saved.ID).Msg("Student admitted")
	view := toStudentView(*saved)
	return &view, nil
}

// UpdateStudent replaces a student record
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, req dto.StudentRequest) (*dto.StudentView, error) {
	student := req.ToModel(id)
	if err := validateStudent(student); err != nil {
		return nil, err
	}
	return s.save(ctx, student)
}

// PatchStudent applies typed field edits in order to the stored record
func (s *studentServiceImpl) PatchStudent(ctx context.Context, id string, edits []dto.StudentFieldEdit) (*dto.StudentView, error) {
	if len(edits) == 0 {
		return nil, apperrors.NewBadRequestError("no edits given")
	}

	current, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	student := *current
	for _, e := range edits {
		field, err := models.ParseStudentField(e.Field)
		if err != nil {
			return nil, err
		}
		if student, err = student.With(field, strings.TrimSpace(e.Value)); err != nil {
			return nil, err
		}
	}

	if err := validateStudent(student); err != nil {
		return nil, err
	}
	return s.save(ctx, student)
}

// DeleteStudent removes a student
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewBadRequestError("student id is required")
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	logger.Info().Str("student", id).Msg("Student deleted")
	return nil
}

func (s *studentServiceImpl) save(ctx context.Context, student models.Student) (*dto.StudentView, error) {
	saved, err := s.studentRepo.Update(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	view := toStudentView(*saved)
	return &view, nil
}

func validateStudent(st models.Student) error {
	if strings.TrimSpace(st.Name) == "" {
		return apperrors.NewValidationError("Name is required.").
			WithDetails(map[string]interface{}{"field": "name"})
	}
	return validation.CheckIdentityNumbers(st.AadharNumber, st.ContactNumber)
}

func toStudentView(st models.Student) dto.StudentView {
	view := dto.StudentView{Student: st}
	if e164, err := validation.ContactE164(st.ContactNumber); err == nil {
		view.ContactE164 = e164
	}
	return view
}
