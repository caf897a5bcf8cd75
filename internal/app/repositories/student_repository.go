package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// IStudentRepository defines the student admission records operations
type IStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	Create(ctx context.Context, student models.Student) (*models.Student, error)
	Update(ctx context.Context, student models.Student) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

// StudentRepository reads and writes students through the school API
type StudentRepository struct {
	api *APIClient
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(api *APIClient) *StudentRepository {
	return &StudentRepository{api: api}
}

// List returns every student
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.api.Do(ctx, http.MethodGet, "/students", nil, &students); err != nil {
		return nil, err
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// Create admits a new student and returns the saved record
func (r *StudentRepository) Create(ctx context.Context, student models.Student) (*models.Student, error) {
	student.ID = ""
	var saved models.Student
	if err := r.api.Do(ctx, http.MethodPost, "/students", student, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update replaces the student record with the same id
func (r *StudentRepository) Update(ctx context.Context, student models.Student) (*models.Student, error) {
	var saved models.Student
	err := r.api.Do(ctx, http.MethodPut, "/students/"+url.PathEscape(student.ID), student, &saved)
	if err != nil {
		return nil, studentNotFound(err)
	}
	if saved.ID == "" {
		saved = student
	}
	return &saved, nil
}

// Delete removes a student
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	return studentNotFound(r.api.Do(ctx, http.MethodDelete, "/students/"+url.PathEscape(id), nil, nil))
}

func studentNotFound(err error) error {
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewCustomError(apperrors.ErrStudentNotFound, err.Error()).
			WithStatusMsg(apperrors.UserMessage(err, "Student not found"))
	}
	return err
}
