package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/services"
	"github.com/yigit/schooldesk/internal/middleware"
	"github.com/yigit/schooldesk/internal/pkg/helpers"
)

// StudentController handles admission records
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// ListStudents lists students
// @Summary List students
// @Description Case-insensitive search over name, parent name and class, paginated
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(5)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.studentService.ListStudents(ctx.Request.Context(), ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, list)
}

// CreateStudent admits a student
// @Summary Admit a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Admission form"
// @Success 201 {object} dto.APIResponse{data=dto.StudentView}
// @Failure 400 {object} dto.ErrorResponse "Missing name or malformed Aadhaar/contact number"
// @Failure 502 {object} dto.ErrorResponse
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.studentService.CreateStudent(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, view)
}

// UpdateStudent replaces a student record
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.StudentRequest true "Student record"
// @Success 200 {object} dto.APIResponse{data=dto.StudentView}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.studentService.UpdateStudent(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view)
}

// PatchStudent applies field edits
// @Summary Edit student fields
// @Description Applies typed field edits in order, then validates and saves the whole record
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.StudentPatchRequest true "Field edits"
// @Success 200 {object} dto.APIResponse{data=dto.StudentView}
// @Failure 400 {object} dto.ErrorResponse "Unknown field or invalid value"
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id} [patch]
func (c *StudentController) PatchStudent(ctx *gin.Context) {
	var req dto.StudentPatchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.studentService.PatchStudent(ctx.Request.Context(), ctx.Param("id"), req.Edits)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view)
}

// DeleteStudent removes a student
// @Summary Delete a student
// @Tags students
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
