package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"

	"wahlimport/internal/errors"
	"wahlimport/models"
	"wahlimport/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ImportRunRepository implements ports.ImportRunRepository
type ImportRunRepository struct {
	db *sqlx.DB
}

// NewImportRunRepository creates a new import run repository
func NewImportRunRepository(db *sqlx.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

var _ ports.ImportRunRepository = (*ImportRunRepository)(nil)

// Create inserts a new run
func (r *ImportRunRepository) Create(ctx context.Context, run *models.ImportRun) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO import_runs (id, source_file, sheet, status, rows_read, rows_total,
			rows_inserted, batches, error_code, error_message, started_at, finished_at)
		VALUES (:id, :source_file, :sheet, :status, :rows_read, :rows_total,
			:rows_inserted, :batches, :error_code, :error_message, :started_at, :finished_at)
	`, run)
	if err != nil {
		return errors.DatabaseError("failed to create import run", err)
	}
	return nil
}

// Finish stores the final counters and status of a run
func (r *ImportRunRepository) Finish(ctx context.Context, run *models.ImportRun) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE import_runs SET
			sheet = :sheet,
			status = :status,
			rows_read = :rows_read,
			rows_total = :rows_total,
			rows_inserted = :rows_inserted,
			batches = :batches,
			error_code = :error_code,
			error_message = :error_message,
			finished_at = :finished_at
		WHERE id = :id
	`, run)
	if err != nil {
		return errors.DatabaseError("failed to finish import run", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("import run " + run.ID.String())
	}
	return nil
}

// Get retrieves a run by its ID
func (r *ImportRunRepository) Get(ctx context.Context, id uuid.UUID) (*models.ImportRun, error) {
	var run models.ImportRun
	err := r.db.GetContext(ctx, &run, r.db.Rebind(`
		SELECT id, source_file, sheet, status, rows_read, rows_total, rows_inserted, batches,
			error_code, error_message, started_at, finished_at
		FROM import_runs
		WHERE id = ?
	`), id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("import run " + id.String())
		}
		return nil, errors.DatabaseError("failed to get import run", err)
	}
	return &run, nil
}

// List returns the most recent runs first
func (r *ImportRunRepository) List(ctx context.Context, limit int) ([]*models.ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	runs := []*models.ImportRun{}
	err := r.db.SelectContext(ctx, &runs, r.db.Rebind(`
		SELECT id, source_file, sheet, status, rows_read, rows_total, rows_inserted, batches,
			error_code, error_message, started_at, finished_at
		FROM import_runs
		ORDER BY started_at DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list import runs", err)
	}
	return runs, nil
}
