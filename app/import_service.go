package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"wahlimport/adapters/excel"
	"wahlimport/internal/dataset"
	"wahlimport/internal/errors"
	"wahlimport/models"
	"wahlimport/ports"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ImportOptions configures an ImportService
type ImportOptions struct {
	// DataDir is joined onto relative input paths
	DataDir   string
	BatchSize int
	// Out receives the user-facing progress lines
	Out io.Writer
}

// ImportRequest names the workbook and sheet to import
type ImportRequest struct {
	Path  string
	Sheet string
}

// ImportService orchestrates load, reshape, clean and persist of one workbook
type ImportService struct {
	results ports.ResultRepository
	runs    ports.ImportRunRepository
	opts    ImportOptions
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewImportService creates an import service
func NewImportService(results ports.ResultRepository, runs ports.ImportRunRepository, opts ImportOptions, logger logrus.FieldLogger) *ImportService {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &ImportService{
		results: results,
		runs:    runs,
		opts:    opts,
		logger:  logger.WithField("component", "import"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ResolvePath joins a relative path onto the data directory
func (s *ImportService) ResolvePath(path string) string {
	if filepath.IsAbs(path) || s.opts.DataDir == "" {
		return path
	}
	return filepath.Join(s.opts.DataDir, path)
}

// Import runs the whole pipeline for one workbook. The returned run is
// populated even when err is non-nil.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (*models.ImportRun, error) {
	run := &models.ImportRun{
		ID:         uuid.New(),
		SourceFile: s.ResolvePath(req.Path),
		Sheet:      req.Sheet,
		Status:     models.ImportRunRunning,
		StartedAt:  s.now(),
	}
	log := s.logger.WithFields(logrus.Fields{"run_id": run.ID, "file": run.SourceFile})

	if err := s.runs.Create(ctx, run); err != nil {
		return run, errors.Wrap(err, "failed to record import run")
	}

	err := s.execute(ctx, run, log)
	if err != nil {
		run.Status = models.ImportRunFailed
		run.ErrorCode = errors.GetCode(err)
		run.ErrorMessage = err.Error()
		log.WithError(err).WithField("code", run.ErrorCode).Warn("import failed")
	} else {
		run.Status = models.ImportRunSucceeded
		log.WithFields(logrus.Fields{
			"rows_total":    run.RowsTotal,
			"rows_inserted": run.RowsInserted,
			"duplicates":    run.Duplicates(),
		}).Info("import finished")
	}

	finished := s.now()
	run.FinishedAt = &finished
	// the run ledger must not mask the import outcome
	if ferr := s.runs.Finish(context.WithoutCancel(ctx), run); ferr != nil {
		log.WithError(ferr).Warn("failed to finish import run record")
		if err == nil {
			err = ferr
		}
	}
	return run, err
}

func (s *ImportService) execute(ctx context.Context, run *models.ImportRun, log logrus.FieldLogger) error {
	cfg := excel.ExcelConfig{FilePath: run.SourceFile, Sheet: run.Sheet}
	data, err := excel.NewDataReader(cfg, log).ReadData()
	if err != nil {
		return err
	}
	run.Sheet = data.Sheet
	run.RowsRead = len(data.Rows)
	fmt.Fprintf(s.opts.Out, "Sheet %q loaded.\n", data.Sheet)

	wide := dataset.FromExcel(data)
	if ignored := dataset.ClassifyColumns(wide.Columns).Ignored; len(ignored) > 0 {
		log.WithField("columns", ignored).Debug("ignoring columns without vote-type suffix")
	}

	long, err := dataset.Reshape(wide)
	if err != nil {
		return err
	}
	results, err := dataset.Clean(long)
	if err != nil {
		return err
	}
	run.RowsTotal = len(results)
	log.WithField("records", len(results)).Debug("reshaped sheet")

	batchSize := s.opts.BatchSize
	if limit := s.results.MaxBatchSize(); batchSize > limit {
		log.WithFields(logrus.Fields{"batch_size": batchSize, "max": limit}).Warn("batch size exceeds the driver limit, reducing")
		batchSize = limit
	}
	inserted, err := s.results.BulkInsert(ctx, results, batchSize, func(batch, n int) {
		run.Batches = batch
		fmt.Fprintf(s.opts.Out, "Batch %d imported.\n", batch)
		log.WithFields(logrus.Fields{"batch": batch, "inserted": n}).Debug("batch written")
	})
	run.RowsInserted = inserted
	if err != nil {
		return err
	}

	fmt.Fprintln(s.opts.Out, "Import completed.")
	return nil
}
