package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/services"
	"github.com/yigit/schooldesk/internal/middleware"
)

// ResultController handles exam marksheets
type ResultController struct {
	resultService services.ResultService
	exportService services.ExportService
}

// NewResultController creates a new ResultController
func NewResultController(resultService services.ResultService, exportService services.ExportService) *ResultController {
	return &ResultController{
		resultService: resultService,
		exportService: exportService,
	}
}

// Template returns a blank marksheet
// @Summary Blank marksheet
// @Tags results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Result}
// @Router /results/template [get]
func (c *ResultController) Template(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.resultService.Template())
}

// Document renders a marksheet
// @Summary Render marksheet
// @Description Validates the marks, computes total, percentage and grade, and renders the marksheet
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResultRequest true "Marksheet"
// @Success 200 {object} dto.APIResponse{data=dto.ResultDocumentResponse}
// @Failure 400 {object} dto.ErrorResponse "Marks obtained cannot exceed Max Marks"
// @Router /results/document [post]
func (c *ResultController) Document(ctx *gin.Context) {
	var req dto.ResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, _, err := c.resultService.Prepare(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}

// Save stores a marksheet
// @Summary Save marksheet
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResultRequest true "Marksheet"
// @Success 201 {object} dto.APIResponse{data=models.SavedResult}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /results [post]
func (c *ResultController) Save(ctx *gin.Context) {
	var req dto.ResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	saved, err := c.resultService.SaveResult(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, saved)
}

// DownloadPDF exports a marksheet as PDF
// @Summary Download marksheet PDF
// @Tags results
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param request body dto.ResultRequest true "Marksheet"
// @Success 200 {file} file "PDF"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "PDF generation failed"
// @Router /results/pdf [post]
func (c *ResultController) DownloadPDF(ctx *gin.Context) {
	var req dto.ResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	_, doc, err := c.resultService.Prepare(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	art, err := c.exportService.Download(ctx.Request.Context(), doc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendPDF(ctx, art)
}

// Print sends a marksheet to the printer
// @Summary Print marksheet
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResultRequest true "Marksheet"
// @Success 200 {object} dto.APIResponse{data=dto.PrintJobResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "A print job is already running"
// @Router /results/print [post]
func (c *ResultController) Print(ctx *gin.Context) {
	var req dto.ResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	_, doc, err := c.resultService.Prepare(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	job, err := c.exportService.Print(ctx.Request.Context(), doc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, job)
}
