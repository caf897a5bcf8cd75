// Package controllers handles HTTP request handling
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldesk/internal/app/export"
	"github.com/yigit/schooldesk/internal/app/models/dto"
)

// Content types of the exported artifacts
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// HeaderPageCount carries the number of PDF pages
const HeaderPageCount = "X-Page-Count"

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewAPIResponse(data))
}

func attachment(ctx *gin.Context, fileName, contentType string, body []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Data(http.StatusOK, contentType, body)
}

func sendPDF(ctx *gin.Context, art *export.Artifact) {
	ctx.Header(HeaderPageCount, strconv.Itoa(art.Pages))
	attachment(ctx, art.FileName, ContentTypePDF, art.PDF)
}
