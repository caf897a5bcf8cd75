package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/dberrors"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// IExportRepository defines the export history operations
type IExportRepository interface {
	Record(ctx context.Context, rec models.ExportRecord) error
	Recent(ctx context.Context, limit int) ([]models.ExportRecord, error)
}

// ExportRepository stores export history in Postgres
type ExportRepository struct {
	DB *pgxpool.Pool
}

// NewExportRepository creates a new export history repository
func NewExportRepository(db *pgxpool.Pool) *ExportRepository {
	return &ExportRepository{DB: db}
}

var exportColumns = []string{"id", "file_name", "kind", "channel", "byte_size", "pages", "created_at"}

// RecordQuery builds the insert statement for rec
func RecordQuery(rec models.ExportRecord) (string, []interface{}, error) {
	return squirrel.Insert("document_exports").
		Columns(exportColumns...).
		Values(rec.ID, rec.FileName, string(rec.Kind), string(rec.Channel), rec.ByteSize, rec.Pages, rec.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// RecentQuery builds the select statement for the latest limit records
func RecentQuery(limit int) (string, []interface{}, error) {
	return squirrel.Select(exportColumns...).
		From("document_exports").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// Record inserts one export
func (r *ExportRepository) Record(ctx context.Context, rec models.ExportRecord) error {
	sql, args, err := RecordQuery(rec)
	if err != nil {
		logger.Error().Err(err).Msg("Error building record export SQL")
		return err
	}

	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ExportsPrimaryKey) {
			return fmt.Errorf("%w: export %s already recorded", apperrors.ErrConflict, rec.ID)
		}
		logger.Error().Err(err).Str("file", rec.FileName).Msg("Error inserting export record")
		return fmt.Errorf("error recording export: %w", err)
	}
	return nil
}

// Recent returns the latest exports, newest first
func (r *ExportRepository) Recent(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	sql, args, err := RecentQuery(limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error building recent exports SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		if dberrors.IsMissingTable(err) {
			logger.Warn().Msg("document_exports table missing, returning empty history")
			return []models.ExportRecord{}, nil
		}
		logger.Error().Err(err).Msg("Error querying recent exports")
		return nil, fmt.Errorf("error listing exports: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExportRecord])
	if err != nil {
		return nil, fmt.Errorf("error scanning exports: %w", err)
	}
	if records == nil {
		records = []models.ExportRecord{}
	}
	return records, nil
}

// NoopExportRepository is used when the database is disabled
type NoopExportRepository struct{}

func (NoopExportRepository) Record(context.Context, models.ExportRecord) error { return nil }

func (NoopExportRepository) Recent(context.Context, int) ([]models.ExportRecord, error) {
	return []models.ExportRecord{}, nil
}
