package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/app/models/dto"
	"github.com/yigit/schooldesk/internal/app/services"
	"github.com/yigit/schooldesk/internal/middleware"
)

// CashbookController handles the cash ledger
type CashbookController struct {
	cashbookService services.CashbookService
}

// NewCashbookController creates a new CashbookController
func NewCashbookController(cashbookService services.CashbookService) *CashbookController {
	return &CashbookController{cashbookService: cashbookService}
}

func reportQuery(ctx *gin.Context) (models.ReportQuery, bool) {
	q, err := models.ParseReportQuery(ctx.Query("year"), ctx.Query("month"), ctx.Query("reportType"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return q, false
	}
	return q, true
}

// Report returns the ledger report
// @Summary Cash book report
// @Description Without a year every entry is reported. A monthly report without a month covers the whole book.
// @Tags cashbook
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Param reportType query string false "monthly or yearly" Enums(monthly, yearly) default(monthly)
// @Success 200 {object} dto.APIResponse{data=dto.LedgerReportResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /cashbook [get]
func (c *CashbookController) Report(ctx *gin.Context) {
	q, ok := reportQuery(ctx)
	if !ok {
		return
	}

	report, err := c.cashbookService.Report(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, report)
}

// AddEntryResponse is the saved entry with the recomputed report
type AddEntryResponse struct {
	Entry  *models.LedgerEntry       `json:"entry"`
	Report *dto.LedgerReportResponse `json:"report"`
}

// AddEntry records an income or expense
// @Summary Add cash book entry
// @Description Saves the entry and returns the report for the queried period including it. The date defaults to today.
// @Tags cashbook
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Param reportType query string false "monthly or yearly"
// @Param request body dto.LedgerEntryRequest true "Entry"
// @Success 201 {object} dto.APIResponse{data=AddEntryResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /cashbook [post]
func (c *CashbookController) AddEntry(ctx *gin.Context) {
	q, ok := reportQuery(ctx)
	if !ok {
		return
	}

	var req dto.LedgerEntryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	entry, report, err := c.cashbookService.AddEntry(ctx.Request.Context(), q, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, AddEntryResponse{Entry: entry, Report: report})
}

// Workbook exports the report as xlsx
// @Summary Download cash book report
// @Tags cashbook
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Param reportType query string false "monthly or yearly"
// @Success 200 {file} file "Workbook"
// @Failure 400 {object} dto.ErrorResponse
// @Router /cashbook/report.xlsx [get]
func (c *CashbookController) Workbook(ctx *gin.Context) {
	q, ok := reportQuery(ctx)
	if !ok {
		return
	}

	buf, name, err := c.cashbookService.Workbook(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	attachment(ctx, name, ContentTypeXLSX, buf.Bytes())
}
