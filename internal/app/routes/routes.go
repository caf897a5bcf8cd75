package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldesk/internal/app/controllers"
	"github.com/yigit/schooldesk/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth        *controllers.AuthController
	Student     *controllers.StudentController
	Certificate *controllers.CertificateController
	Result      *controllers.ResultController
	Cashbook    *controllers.CashbookController
	Export      *controllers.ExportController
	Health      *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", ctrl.Health.Check)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.TokenAuth())

	students := authenticated.Group("/students")
	{
		students.GET("", ctrl.Student.ListStudents)
		students.POST("", ctrl.Student.CreateStudent)
		students.PUT("/:id", ctrl.Student.UpdateStudent)
		students.PATCH("/:id", ctrl.Student.PatchStudent)
		students.DELETE("/:id", ctrl.Student.DeleteStudent)
	}

	certificates := authenticated.Group("/certificates")
	{
		certificates.GET("", ctrl.Certificate.ListCertificates)
		certificates.POST("", ctrl.Certificate.IssueCertificate)
		certificates.GET("/:id/document", ctrl.Certificate.GetDocument)
		certificates.GET("/:id/pdf", ctrl.Certificate.DownloadPDF)
		certificates.POST("/:id/print", ctrl.Certificate.Print)
	}

	results := authenticated.Group("/results")
	{
		results.GET("/template", ctrl.Result.Template)
		results.POST("/document", ctrl.Result.Document)
		results.POST("", ctrl.Result.Save)
		results.POST("/pdf", ctrl.Result.DownloadPDF)
		results.POST("/print", ctrl.Result.Print)
	}

	cashbook := authenticated.Group("/cashbook")
	{
		cashbook.GET("", ctrl.Cashbook.Report)
		cashbook.POST("", ctrl.Cashbook.AddEntry)
		cashbook.GET("/report.xlsx", ctrl.Cashbook.Workbook)
	}

	authenticated.GET("/exports", ctrl.Export.History)
}
