package sqlstore

import (
	"context"
	"fmt"
	"testing"

	"wahlimport/internal/migration"
	"wahlimport/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewRunner().Run(context.Background(), db))
	return db
}

func sampleResult(wbzNr, stimmart, partei string, stimmen int) models.ElectionResult {
	return models.ElectionResult{
		Wahl:            "LTW2024",
		WKNr:            1,
		WKName:          "Nordstadt",
		Ebene:           "WBZ",
		AGS:             "14612000",
		Ortname:         "Dresden",
		WBZArt:          "Urne",
		WBZNr:           wbzNr,
		WBZName:         "WBZ " + wbzNr,
		Wahlberechtigte: 1000,
		Waehler:         600,
		Stimmart:        stimmart,
		Ungueltige:      5,
		Gueltige:        595,
		Partei:          partei,
		Stimmen:         stimmen,
	}
}

func sampleResults(n int) []models.ElectionResult {
	out := make([]models.ElectionResult, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sampleResult(fmt.Sprintf("%04d", i), "1", "CDU", i))
	}
	return out
}
