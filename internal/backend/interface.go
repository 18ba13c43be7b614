package backend

import (
	"context"
	"errors"

	"budgetcharts/internal/source"
)

// ErrUnknownSource is returned for a source type no factory can build.
var ErrUnknownSource = errors.New("unknown source")

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the page data reader and optional cleanup function
type BackendResult struct {
	Reader  source.PageDataReader
	Cleanup CleanupFunc
}

// Close runs the cleanup function, if any.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates readers based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for reader creation
type Config struct {
	Type     BackendType
	Currency string

	// File specific; empty or "-" reads stdin
	InputPath string

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

// BackendType represents the type of data source
type BackendType string

const (
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case FileBackend, SQLiteBackend, SheetsBackend:
		return true
	default:
		return false
	}
}
