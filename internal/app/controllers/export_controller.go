package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldesk/internal/app/services"
	"github.com/yigit/schooldesk/internal/middleware"
)

// ExportController lists the export history
type ExportController struct {
	exportService services.ExportService
}

// NewExportController creates a new ExportController
func NewExportController(exportService services.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

// History lists recent exports
// @Summary Export history
// @Description Latest PDF downloads and print jobs, newest first. Empty when the database is disabled.
// @Tags exports
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum records" default(100)
// @Success 200 {object} dto.APIResponse{data=[]models.ExportRecord}
// @Failure 500 {object} dto.ErrorResponse
// @Router /exports [get]
func (c *ExportController) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	records, err := c.exportService.History(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, records)
}

// HealthController reports liveness
type HealthController struct {
	device string
	ping   func(ctx context.Context) error
}

// NewHealthController creates a HealthController. ping checks the database and may be nil.
func NewHealthController(device string, ping func(ctx context.Context) error) *HealthController {
	return &HealthController{device: device, ping: ping}
}

// Check reports service health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	status := gin.H{
		"status":  "ok",
		"printer": c.device,
		"time":    time.Now().UTC(),
	}
	if c.ping == nil {
		status["database"] = "disabled"
		ctx.JSON(http.StatusOK, status)
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()
	if err := c.ping(pingCtx); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		ctx.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status["database"] = "ok"
	ctx.JSON(http.StatusOK, status)
}
