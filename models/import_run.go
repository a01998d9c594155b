package models

import (
	"time"

	"github.com/google/uuid"
)

// ImportRunStatus represents the current state of an import run
type ImportRunStatus string

const (
	ImportRunRunning   ImportRunStatus = "running"
	ImportRunSucceeded ImportRunStatus = "succeeded"
	ImportRunFailed    ImportRunStatus = "failed"
)

// ImportRun records one invocation of the spreadsheet import
type ImportRun struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	SourceFile   string          `json:"source_file" db:"source_file"`
	Sheet        string          `json:"sheet" db:"sheet"`
	Status       ImportRunStatus `json:"status" db:"status"`
	RowsRead     int             `json:"rows_read" db:"rows_read"`
	RowsTotal    int             `json:"rows_total" db:"rows_total"`
	RowsInserted int             `json:"rows_inserted" db:"rows_inserted"`
	Batches      int             `json:"batches" db:"batches"`
	ErrorCode    string          `json:"error_code,omitempty" db:"error_code"`
	ErrorMessage string          `json:"error_message,omitempty" db:"error_message"`
	StartedAt    time.Time       `json:"started_at" db:"started_at"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty" db:"finished_at"`
}

// Duplicates is the number of records ignored because they already existed
func (r *ImportRun) Duplicates() int {
	if r.RowsTotal < r.RowsInserted {
		return 0
	}
	return r.RowsTotal - r.RowsInserted
}

// ElectionSummary aggregates one election's imported results
type ElectionSummary struct {
	Wahl          string         `json:"wahl"`
	Stimmart      string         `json:"stimmart"`
	PollingPlaces int            `json:"polling_places"`
	Turnout       TurnoutStats   `json:"turnout"`
	Ballots       BallotTotal    `json:"ballots"`
	Parties       []PartySummary `json:"parties"`
}

// TurnoutStats describes voter turnout across polling places, as fractions of the electorate
type TurnoutStats struct {
	Overall float64 `json:"overall"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	StdDev  float64 `json:"std_dev"`
	Counted int     `json:"counted"`
}

// PartySummary is a party's vote total and share of valid votes
type PartySummary struct {
	Partei  string  `json:"partei"`
	Stimmen int64   `json:"stimmen"`
	Anteil  float64 `json:"anteil"`
}
