package backend

import (
	"context"
	"fmt"
	"log/slog"

	blog "budgetcharts/internal/log"
	gsheet "budgetcharts/internal/sheets/google"
	"budgetcharts/internal/source"
	"budgetcharts/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case FileBackend:
		return f.createFileBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, config.Type)
	}
}

func (f *DefaultFactory) createFileBackend(config Config) (*BackendResult, error) {
	reader := source.NewFileReader(config.InputPath)
	reader.Currency = config.Currency

	input := config.InputPath
	if input == "" {
		input = "-"
	}
	f.logger.Info("Initialized file source", blog.NewFields().
		WithSource(config.Type.String()).
		WithPath(input).
		ToSlice()...)

	return &BackendResult{Reader: reader}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, config.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite source", blog.NewFields().
		WithSource(config.Type.String()).
		WithPath(config.SQLiteDBPath).
		ToSlice()...)

	return &BackendResult{
		Reader:  repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   config.GoogleSpreadsheetID,
		SheetName:       config.GoogleSheetName,
		CredentialsJSON: config.GoogleServiceAccountJSON,
		CredentialsFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets source", append(blog.NewFields().
		WithSource(config.Type.String()).
		ToSlice(), "sheet", config.GoogleSheetName)...)

	return &BackendResult{
		Reader: source.ListerReader{Lister: cli, Currency: config.Currency},
	}, nil
}
