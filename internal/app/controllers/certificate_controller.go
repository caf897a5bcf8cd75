package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/services"
	"github.com/yigit/schooldesk/internal/middleware"
)

// CertificateController handles certificate issue, rendering and export
type CertificateController struct {
	certificateService services.CertificateService
	exportService      services.ExportService
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService services.CertificateService, exportService services.ExportService) *CertificateController {
	return &CertificateController{
		certificateService: certificateService,
		exportService:      exportService,
	}
}

// ListCertificates lists issued certificates
// @Summary List certificates
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CertificateView}
// @Failure 502 {object} dto.ErrorResponse
// @Router /certificates [get]
func (c *CertificateController) ListCertificates(ctx *gin.Context) {
	views, err := c.certificateService.ListCertificates(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, views)
}

// IssueCertificate issues a certificate
// @Summary Issue a certificate
// @Description Leaving and Transfer certificates need admission and leaving dates. The issue date is set by the server.
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CertificateRequest true "Certificate"
// @Success 201 {object} dto.APIResponse{data=dto.CertificateView}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /certificates [post]
func (c *CertificateController) IssueCertificate(ctx *gin.Context) {
	var req dto.CertificateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.certificateService.IssueCertificate(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, view)
}

// GetDocument renders a certificate
// @Summary Certificate document
// @Description Returns the rendered document model used for preview, PDF and print
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Certificate ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /certificates/{id}/document [get]
func (c *CertificateController) GetDocument(ctx *gin.Context) {
	doc, err := c.certificateService.RenderCertificate(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, doc)
}

// DownloadPDF exports a certificate as PDF
// @Summary Download certificate PDF
// @Tags certificates
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Certificate ID"
// @Success 200 {file} file "PDF"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "PDF generation failed"
// @Router /certificates/{id}/pdf [get]
func (c *CertificateController) DownloadPDF(ctx *gin.Context) {
	doc, err := c.certificateService.RenderCertificate(ctx.Request.Context(), ctx.Param("id"))
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

// Print sends a certificate to the printer
// @Summary Print certificate
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.PrintJobResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "A print job is already running"
// @Failure 500 {object} dto.ErrorResponse "Printing failed"
// @Router /certificates/{id}/print [post]
func (c *CertificateController) Print(ctx *gin.Context) {
	doc, err := c.certificateService.RenderCertificate(ctx.Request.Context(), ctx.Param("id"))
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
