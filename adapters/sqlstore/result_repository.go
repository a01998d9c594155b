// Package sqlstore persists election results with sqlx. The queries are
// written for PostgreSQL and stay within the subset SQLite shares with it.
package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"wahlimport/internal/errors"
	"wahlimport/models"
	"wahlimport/ports"

	"github.com/jmoiron/sqlx"
)

// DefaultBatchSize is the number of rows written per insert statement
const DefaultBatchSize = 1000

var insertColumns = []string{
	"wahl", "wk_nr", "wk_name", "ebene", "ags", "ortname", "briefwahl_sonderfall",
	"wbz_art", "wbz_nr", "wbz_name", "wahlberechtigte", "waehler", "stimmart",
	"ungueltige", "gueltige", "partei", "stimmen",
}

// Bind variable limits per statement
const (
	postgresMaxParams = 65535
	sqliteMaxParams   = 32766
)

const selectColumns = `id, wahl, wk_nr, wk_name, ebene, ags, ortname, briefwahl_sonderfall,
	wbz_art, wbz_nr, wbz_name, wahlberechtigte, waehler, stimmart,
	ungueltige, gueltige, partei, stimmen, aktualisiert_am`

// ResultRepository implements ports.ResultRepository
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

var _ ports.ResultRepository = (*ResultRepository)(nil)

// MaxBatchSize is the largest batch that fits the driver's bind variable limit
func (r *ResultRepository) MaxBatchSize() int {
	limit := postgresMaxParams
	if r.db.DriverName() == "sqlite3" {
		limit = sqliteMaxParams
	}
	return limit / len(insertColumns)
}

// BulkInsert writes results in batches, each in its own transaction, ignoring duplicates
func (r *ResultRepository) BulkInsert(ctx context.Context, results []models.ElectionResult, batchSize int, progress ports.BatchProgress) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	batchSize = min(batchSize, r.MaxBatchSize())

	inserted := 0
	for start, batch := 0, 1; start < len(results); start, batch = start+batchSize, batch+1 {
		end := min(start+batchSize, len(results))
		n, err := r.insertBatch(ctx, results[start:end])
		if err != nil {
			return inserted, errors.DatabaseError(fmt.Sprintf("failed to insert batch %d", batch), err)
		}
		inserted += n
		if progress != nil {
			progress(batch, n)
		}
	}
	return inserted, nil
}

func (r *ResultRepository) insertBatch(ctx context.Context, batch []models.ElectionResult) (int, error) {
	query, args := buildInsert(batch)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(affected), nil
}

// buildInsert renders one multi-row insert with '?' placeholders
func buildInsert(batch []models.ElectionResult) (string, []interface{}) {
	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(insertColumns)), ", ") + ")"

	var b strings.Builder
	b.WriteString("INSERT INTO wahlergebnis_wbz (")
	b.WriteString(strings.Join(insertColumns, ", "))
	b.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(batch)*len(insertColumns))
	for i, res := range batch {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(row)
		args = append(args,
			res.Wahl, res.WKNr, res.WKName, res.Ebene, res.AGS, res.Ortname, res.BriefwahlSonderfall,
			res.WBZArt, res.WBZNr, res.WBZName, res.Wahlberechtigte, res.Waehler, res.Stimmart,
			res.Ungueltige, res.Gueltige, res.Partei, res.Stimmen,
		)
	}
	b.WriteString(" ON CONFLICT DO NOTHING")
	return b.String(), args
}

// List returns stored results matching the filter
func (r *ResultRepository) List(ctx context.Context, filter models.ResultFilter) ([]models.ElectionResult, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + selectColumns + ` FROM wahlergebnis_wbz` + where +
		` ORDER BY wahl, wk_nr, ags, wbz_nr, stimmart, partei, id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	results := []models.ElectionResult{}
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(query), args...); err != nil {
		return nil, errors.DatabaseError("failed to query results", err)
	}
	return results, nil
}

// Count returns the number of stored results matching the filter
func (r *ResultRepository) Count(ctx context.Context, filter models.ResultFilter) (int, error) {
	where, args := filterClause(filter)
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM wahlergebnis_wbz`+where), args...); err != nil {
		return 0, errors.DatabaseError("failed to count results", err)
	}
	return n, nil
}

func filterClause(f models.ResultFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		conds = append(conds, cond)
		args = append(args, arg)
	}
	if f.Wahl != "" {
		add("wahl = ?", f.Wahl)
	}
	if f.WKNr != 0 {
		add("wk_nr = ?", f.WKNr)
	}
	if f.AGS != "" {
		add("ags = ?", f.AGS)
	}
	if f.WBZNr != "" {
		add("wbz_nr = ?", f.WBZNr)
	}
	if f.Stimmart != "" {
		add("stimmart = ?", f.Stimmart)
	}
	if f.Partei != "" {
		add("partei = ?", f.Partei)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Turnout returns the electorate and voters of every polling place of an election
func (r *ResultRepository) Turnout(ctx context.Context, wahl string) ([]models.PollingPlaceTurnout, error) {
	query := `SELECT wk_nr, ags, wbz_nr, MAX(wahlberechtigte) AS wahlberechtigte, MAX(waehler) AS waehler
		FROM wahlergebnis_wbz
		WHERE wahl = ?
		GROUP BY wk_nr, ags, wbz_nr
		ORDER BY wk_nr, ags, wbz_nr`

	rows := []models.PollingPlaceTurnout{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), wahl); err != nil {
		return nil, errors.DatabaseError("failed to query turnout", err)
	}
	return rows, nil
}

// PartyTotals sums party votes per vote category, largest first
func (r *ResultRepository) PartyTotals(ctx context.Context, wahl, stimmart string) ([]models.PartyTotal, error) {
	query := `SELECT stimmart, partei, SUM(stimmen) AS stimmen
		FROM wahlergebnis_wbz
		WHERE wahl = ?`
	args := []interface{}{wahl}
	if stimmart != "" {
		query += ` AND stimmart = ?`
		args = append(args, stimmart)
	}
	query += ` GROUP BY stimmart, partei ORDER BY stimmart, SUM(stimmen) DESC, partei`

	totals := []models.PartyTotal{}
	if err := r.db.SelectContext(ctx, &totals, r.db.Rebind(query), args...); err != nil {
		return nil, errors.DatabaseError("failed to query party totals", err)
	}
	return totals, nil
}

// BallotTotals sums ballots per vote category, counting each polling place once
func (r *ResultRepository) BallotTotals(ctx context.Context, wahl, stimmart string) ([]models.BallotTotal, error) {
	inner := `SELECT DISTINCT wk_nr, ags, wbz_nr, stimmart, gueltige, ungueltige
		FROM wahlergebnis_wbz
		WHERE wahl = ?`
	args := []interface{}{wahl}
	if stimmart != "" {
		inner += ` AND stimmart = ?`
		args = append(args, stimmart)
	}
	query := `SELECT stimmart, SUM(gueltige) AS gueltige, SUM(ungueltige) AS ungueltige
		FROM (` + inner + `) pp
		GROUP BY stimmart
		ORDER BY stimmart`

	totals := []models.BallotTotal{}
	if err := r.db.SelectContext(ctx, &totals, r.db.Rebind(query), args...); err != nil {
		return nil, errors.DatabaseError("failed to query ballot totals", err)
	}
	return totals, nil
}
