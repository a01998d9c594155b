package migration

import (
	"context"
	"fmt"

	"wahlimport/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the result schema. Every statement is idempotent.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	d, err := dialectFor(db.DriverName())
	if err != nil {
		return err
	}

	for _, step := range []struct {
		name  string
		stmts []string
	}{
		{"wahlergebnis_wbz table", d.resultTable()},
		{"wahlergebnis_wbz indexes", resultIndexes},
		{"aktualisiert_am trigger", d.touchTrigger()},
		{"import_runs table", d.importRunsTable()},
	} {
		for _, stmt := range step.stmts {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return errors.DatabaseError(fmt.Sprintf("failed to create %s", step.name), err)
			}
		}
	}
	return nil
}

type dialect string

const (
	postgresDialect dialect = "postgres"
	sqliteDialect   dialect = "sqlite3"
)

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return postgresDialect, nil
	case "sqlite3":
		return sqliteDialect, nil
	}
	return "", errors.ConfigInvalid(fmt.Sprintf("unsupported database driver: %s", driver))
}

func (d dialect) resultTable() []string {
	id := "BIGSERIAL PRIMARY KEY"
	ts := "TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()"
	if d == sqliteDialect {
		id = "INTEGER PRIMARY KEY AUTOINCREMENT"
		ts = "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"
	}
	return []string{fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS wahlergebnis_wbz (
			id %s,
			wahl VARCHAR(100) NOT NULL,
			wk_nr INTEGER NOT NULL,
			wk_name VARCHAR(255) NOT NULL DEFAULT '',
			ebene VARCHAR(50) NOT NULL DEFAULT '',
			ags VARCHAR(12) NOT NULL DEFAULT '',
			ortname VARCHAR(255) NOT NULL DEFAULT '',
			briefwahl_sonderfall VARCHAR(255) NOT NULL DEFAULT '',
			wbz_art VARCHAR(50) NOT NULL DEFAULT '',
			wbz_nr VARCHAR(50) NOT NULL,
			wbz_name VARCHAR(255) NOT NULL DEFAULT '',
			wahlberechtigte INTEGER NOT NULL DEFAULT 0,
			waehler INTEGER NOT NULL,
			stimmart VARCHAR(1) NOT NULL,
			ungueltige INTEGER NOT NULL,
			gueltige INTEGER NOT NULL,
			partei VARCHAR(255) NOT NULL DEFAULT '',
			stimmen INTEGER NOT NULL,
			aktualisiert_am %s,
			CONSTRAINT wahlergebnis_wbz_unique UNIQUE (wahl, wk_nr, ags, wbz_nr, stimmart, partei)
		)
	`, id, ts)}
}

var resultIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_wahlergebnis_wbz_wahl_stimmart ON wahlergebnis_wbz(wahl, stimmart)`,
	`CREATE INDEX IF NOT EXISTS idx_wahlergebnis_wbz_partei ON wahlergebnis_wbz(partei)`,
}

func (d dialect) touchTrigger() []string {
	if d == sqliteDialect {
		return []string{`
			CREATE TRIGGER IF NOT EXISTS wahlergebnis_wbz_touch
			AFTER UPDATE ON wahlergebnis_wbz
			FOR EACH ROW WHEN NEW.aktualisiert_am = OLD.aktualisiert_am
			BEGIN
				UPDATE wahlergebnis_wbz SET aktualisiert_am = CURRENT_TIMESTAMP WHERE id = NEW.id;
			END
		`}
	}
	return []string{`
		CREATE OR REPLACE FUNCTION wahlergebnis_wbz_touch() RETURNS TRIGGER AS $$
		BEGIN
			NEW.aktualisiert_am = NOW();
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql
	`, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_trigger WHERE tgname = 'wahlergebnis_wbz_touch'
			) THEN
				CREATE TRIGGER wahlergebnis_wbz_touch
				BEFORE UPDATE ON wahlergebnis_wbz
				FOR EACH ROW EXECUTE FUNCTION wahlergebnis_wbz_touch();
			END IF;
		END $$
	`}
}

func (d dialect) importRunsTable() []string {
	ts := "TIMESTAMP WITH TIME ZONE"
	id := "UUID"
	if d == sqliteDialect {
		ts = "TIMESTAMP"
		id = "TEXT"
	}
	return []string{fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS import_runs (
			id %[1]s PRIMARY KEY,
			source_file TEXT NOT NULL,
			sheet VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL,
			rows_read INTEGER NOT NULL DEFAULT 0,
			rows_total INTEGER NOT NULL DEFAULT 0,
			rows_inserted INTEGER NOT NULL DEFAULT 0,
			batches INTEGER NOT NULL DEFAULT 0,
			error_code VARCHAR(50) NOT NULL DEFAULT '',
			error_message TEXT NOT NULL DEFAULT '',
			started_at %[2]s NOT NULL,
			finished_at %[2]s
		)
	`, id, ts), `CREATE INDEX IF NOT EXISTS idx_import_runs_started_at ON import_runs(started_at)`}
}
