package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wahlimport/adapters/sqlstore"
	"wahlimport/app"
	"wahlimport/internal"
	"wahlimport/internal/config"
	"wahlimport/internal/migration"
	"wahlimport/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(wbzNr, stimmart, partei string, stimmen int) models.ElectionResult {
	return models.ElectionResult{
		Wahl: "LTW2024", WKNr: 1, WKName: "Nordstadt", Ebene: "WBZ", AGS: "14612000",
		Ortname: "Dresden", WBZArt: "Urne", WBZNr: wbzNr, WBZName: "WBZ " + wbzNr,
		Wahlberechtigte: 1000, Waehler: 500, Stimmart: stimmart,
		Ungueltige: 10, Gueltige: 490, Partei: partei, Stimmen: stimmen,
	}
}

func newTestServer(t *testing.T) (*Server, *sqlstore.ImportRunRepository) {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migration.NewRunner().Run(context.Background(), db))

	results := sqlstore.NewResultRepository(db)
	runs := sqlstore.NewImportRunRepository(db)
	_, err = results.BulkInsert(context.Background(), []models.ElectionResult{
		result("0101", "1", "CDU", 250),
		result("0101", "1", "SPD", 240),
		result("0101", "2", "CDU", 300),
		result("0101", "2", "SPD", 190),
		result("0102", "2", "CDU", 200),
		result("0102", "2", "SPD", 290),
	}, 100, nil)
	require.NoError(t, err)

	logger := internal.NewNopLogger()
	cfg := config.ServerConfig{Port: "0", GinMode: gin.TestMode, PageSize: 2, MaxPageSize: 3}
	return NewServer(results, runs, app.NewSummaryService(results, logger), cfg, logger), runs
}

func get(t *testing.T, s *Server, url string, out interface{}) int {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	s.Handler().ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

type resultsPage struct {
	Results []models.ElectionResult `json:"results"`
	Total   int                     `json:"total"`
	Limit   int                     `json:"limit"`
	Offset  int                     `json:"offset"`
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, get(t, s, "/health", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListResults_DefaultPage(t *testing.T) {
	s, _ := newTestServer(t)

	var page resultsPage
	require.Equal(t, http.StatusOK, get(t, s, "/api/results", &page))
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "1", page.Results[0].Stimmart)
	assert.Equal(t, "CDU", page.Results[0].Partei)
}

func TestListResults_Filters(t *testing.T) {
	s, _ := newTestServer(t)

	var page resultsPage
	require.Equal(t, http.StatusOK, get(t, s, "/api/results?stimmart=2&partei=SPD&wk_nr=1", &page))
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "0101", page.Results[0].WBZNr)
	assert.Equal(t, 290, page.Results[1].Stimmen)
}

func TestListResults_LimitIsCapped(t *testing.T) {
	s, _ := newTestServer(t)

	var page resultsPage
	require.Equal(t, http.StatusOK, get(t, s, "/api/results?limit=50&offset=4", &page))
	assert.Equal(t, 3, page.Limit)
	assert.Len(t, page.Results, 2)
}

func TestListResults_BadQuery(t *testing.T) {
	s, _ := newTestServer(t)

	var body map[string]string
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/results?wk_nr=eins", &body))
	assert.Equal(t, "INVALID_INPUT", body["code"])
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/results?offset=-1", nil))
}

func TestSummary(t *testing.T) {
	s, _ := newTestServer(t)

	var summary models.ElectionSummary
	require.Equal(t, http.StatusOK, get(t, s, "/api/elections/LTW2024/summary", &summary))
	assert.Equal(t, "2", summary.Stimmart)
	assert.Equal(t, 2, summary.PollingPlaces)
	assert.Equal(t, int64(980), summary.Ballots.Gueltige)
	require.Len(t, summary.Parties, 2)
	assert.Equal(t, "CDU", summary.Parties[0].Partei)
	assert.Equal(t, int64(500), summary.Parties[0].Stimmen)

	var body map[string]string
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/elections/BTW2025/summary", &body))
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/elections/LTW2024/summary?stimmart=7", nil))
}

func TestListImports(t *testing.T) {
	s, runs := newTestServer(t)

	run := &models.ImportRun{
		ID:         uuid.New(),
		SourceFile: "daten/ltw.xlsx",
		Status:     models.ImportRunRunning,
		StartedAt:  time.Now().UTC(),
	}
	require.NoError(t, runs.Create(context.Background(), run))

	var body struct {
		Imports []models.ImportRun `json:"imports"`
		Count   int                `json:"count"`
	}
	require.Equal(t, http.StatusOK, get(t, s, "/api/imports?limit=5", &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Imports, 1)
	assert.Equal(t, run.ID, body.Imports[0].ID)
}
