package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/schooldesk/internal/app/controllers"
	"github.com/yigit/schooldesk/internal/app/documents"
	"github.com/yigit/schooldesk/internal/app/export"
	appMigrations "github.com/yigit/schooldesk/internal/app/migrations"
	appRepos "github.com/yigit/schooldesk/internal/app/repositories"
	appRoutes "github.com/yigit/schooldesk/internal/app/routes"
	appServices "github.com/yigit/schooldesk/internal/app/services"
	"github.com/yigit/schooldesk/internal/config"
	"github.com/yigit/schooldesk/internal/db"
	appMiddleware "github.com/yigit/schooldesk/internal/middleware"
	"github.com/yigit/schooldesk/internal/pkg/filestorage"
	"github.com/yigit/schooldesk/internal/pkg/helpers"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// MigrationsDir holds the export history schema
const MigrationsDir = "migrations"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	FileStorage    *filestorage.LocalStorage
	Pipeline       *export.Pipeline
	PrintSession   *export.PrintSession
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to Postgres and applies the migrations. It returns a nil pool
// when the database is disabled; export history is then not kept.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	if !cfg.Database.Enabled {
		lgr.Info().Msg("Database disabled, export history will not be recorded")
		return nil, nil
	}

	lgr.Info().Str("host", cfg.Database.Host).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	if _, err := os.Stat(MigrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", MigrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, MigrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database ready")
	return database.Pool, nil
}

// NewPrinter builds the configured print device
func NewPrinter(cfg *config.Config, storage filestorage.FileStorage) export.Printer {
	if strings.ToLower(cfg.Export.Printer) == config.PrinterCommand {
		return export.NewCommandPrinter(cfg.Export.PrintCommand)
	}
	return export.NewSpoolPrinter(storage, cfg.Export.SpoolDir)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	api := appRepos.NewAPIClient(cfg.Backend.BaseURL, helpers.ParseDuration(cfg.Backend.Timeout, appRepos.DefaultTimeout))
	deps.Repos = appRepos.NewRepositories(api, dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	renderer := documents.NewRenderer(documents.School{
		Name:    cfg.School.Name,
		Address: cfg.School.Address,
	}, nil)

	deps.Pipeline = export.NewPipeline(export.NewRasterizer(), export.NewPDFWriter(cfg.Export.PageMargin))
	printer := NewPrinter(cfg, deps.FileStorage)
	deps.PrintSession = export.NewPrintSession(deps.Pipeline, printer)
	lgr.Info().Str("device", printer.Name()).Msg("Print device configured")

	authService := appServices.NewAuthService(deps.Repos.AuthRepository, logger.Component("auth"))
	studentService := appServices.NewStudentService(deps.Repos.StudentRepository)
	certificateService := appServices.NewCertificateService(
		deps.Repos.CertificateRepository,
		deps.Repos.StudentRepository,
		renderer,
		nil,
	)
	resultService := appServices.NewResultService(deps.Repos.ResultRepository, renderer, cfg.School.ResultDefault)
	cashbookService := appServices.NewCashbookService(deps.Repos.CashbookRepository, nil)
	exportService := appServices.NewExportService(deps.Pipeline, deps.PrintSession, deps.Repos.ExportRepository, appServices.ExportSettings{
		CertificateScale: cfg.Export.CertificateScale,
		MarksheetScale:   cfg.Export.MarksheetScale,
		DownloadSettle:   helpers.ParseDuration(cfg.Export.DownloadSettle, export.DefaultDownloadSettle),
		PrintSettle:      helpers.ParseDuration(cfg.Export.PrintSettle, export.DefaultPrintSettle),
	})

	var ping func(ctx context.Context) error
	if dbPool != nil {
		ping = dbPool.Ping
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware()
	deps.Controllers = appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(authService, logger.Component("auth")),
		Student:     appControllers.NewStudentController(studentService),
		Certificate: appControllers.NewCertificateController(certificateService, exportService),
		Result:      appControllers.NewResultController(resultService, exportService),
		Cashbook:    appControllers.NewCashbookController(cashbookService),
		Export:      appControllers.NewExportController(exportService),
		Health:      appControllers.NewHealthController(printer.Name(), ping),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router, nil
}
