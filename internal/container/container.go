package container

import (
	"context"
	"io"

	"wahlimport/adapters/sqlstore"
	"wahlimport/app"
	"wahlimport/internal/config"
	"wahlimport/internal/errors"
	"wahlimport/internal/migration"
	"wahlimport/ports"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger logrus.FieldLogger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	ResultRepo    ports.ResultRepository
	ImportRunRepo ports.ImportRunRepository

	Summaries *app.SummaryService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger logrus.FieldLogger) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// Open connects to the configured database and initializes the repositories
func (c *Container) Open(ctx context.Context) error {
	db, err := sqlx.ConnectContext(ctx, c.Config.Database.Driver, c.Config.Database.URL)
	if err != nil {
		return errors.DatabaseError("failed to connect to database", err)
	}
	// an in-memory SQLite database exists once per connection
	if c.Config.Database.Driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	return c.InitWithDatabase(db)
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return errors.InternalError("database connection cannot be nil")
	}
	c.DB = db

	c.ResultRepo = sqlstore.NewResultRepository(db)
	c.ImportRunRepo = sqlstore.NewImportRunRepository(db)
	c.Summaries = app.NewSummaryService(c.ResultRepo, c.Logger)

	c.Logger.WithField("driver", db.DriverName()).Debug("container initialized")
	return nil
}

// Migrate brings the schema up to date
func (c *Container) Migrate(ctx context.Context) error {
	runner := migration.NewRunner()
	if err := runner.Run(ctx, c.DB); err != nil {
		return err
	}
	c.Logger.WithField("version", runner.Version()).Debug("schema up to date")
	return nil
}

// ImportService builds an import service writing progress lines to out
func (c *Container) ImportService(out io.Writer) *app.ImportService {
	return app.NewImportService(c.ResultRepo, c.ImportRunRepo, app.ImportOptions{
		DataDir:   c.Config.Import.DataDir,
		BatchSize: c.Config.Import.BatchSize,
		Out:       out,
	}, c.Logger)
}

// Shutdown releases the database connection
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
