package ports

import (
	"context"

	"wahlimport/models"

	"github.com/google/uuid"
)

// BatchProgress is called after each persisted batch with its 1-based number and the rows it inserted
type BatchProgress func(batch, inserted int)

// ResultRepository defines the interface for election result storage
type ResultRepository interface {
	// BulkInsert writes results in batches of batchSize, skipping rows that violate uniqueness.
	// It returns the number of rows actually inserted.
	// Larger batch sizes are reduced to MaxBatchSize.
	BulkInsert(ctx context.Context, results []models.ElectionResult, batchSize int, progress BatchProgress) (int, error)

	// MaxBatchSize is the largest number of rows one insert statement can carry
	MaxBatchSize() int

	// List returns stored results matching the filter
	List(ctx context.Context, filter models.ResultFilter) ([]models.ElectionResult, error)

	// Count returns the number of stored results matching the filter, ignoring limit and offset
	Count(ctx context.Context, filter models.ResultFilter) (int, error)

	// Turnout returns one row per polling place of an election
	Turnout(ctx context.Context, wahl string) ([]models.PollingPlaceTurnout, error)

	// PartyTotals sums party votes per vote category
	PartyTotals(ctx context.Context, wahl, stimmart string) ([]models.PartyTotal, error)

	// BallotTotals sums valid and invalid ballots per vote category
	BallotTotals(ctx context.Context, wahl, stimmart string) ([]models.BallotTotal, error)
}

// ImportRunRepository defines the interface for the import run ledger
type ImportRunRepository interface {
	Create(ctx context.Context, run *models.ImportRun) error
	Finish(ctx context.Context, run *models.ImportRun) error
	Get(ctx context.Context, id uuid.UUID) (*models.ImportRun, error)
	List(ctx context.Context, limit int) ([]*models.ImportRun, error)
}
