package storage

import (
	"database/sql"
	"embed"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// The budget application owns the real schema; these migrations recreate
// the tables this package reads.
//
//go:embed testdata/migrations/*.sql
var fixtureMigrations embed.FS

// newFixtureDB creates a migrated database in a temp dir and returns its path
// together with a writable handle for seeding.
func newFixtureDB(t *testing.T) (string, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "db.sqlite3")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open fixture database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := runFixtureMigrations(dbPath); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return dbPath, db
}

func runFixtureMigrations(dbPath string) error {
	// Separate connection, so closing the migrator does not close the seeding handle
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return err
	}

	d, err := iofs.New(fixtureMigrations, "testdata/migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

type fixtureOp struct {
	account int64
	label   any // nil for unlabelled
	amount  string
	created string
	final   any // nil for planned
}

func seed(t *testing.T, db *sql.DB, ops ...fixtureOp) {
	t.Helper()
	for _, op := range ops {
		_, err := db.Exec(
			`INSERT INTO budget_operation (amount, description, creation_date, final_date, account_id, label_id)
			 VALUES (?, '', ?, ?, ?, ?)`,
			op.amount, op.created, op.final, op.account, op.label)
		if err != nil {
			t.Fatalf("seed operation %+v: %v", op, err)
		}
	}
}
