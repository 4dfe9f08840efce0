// Package sqlite stores assessments in a local SQLite file. It is the
// default backend of the CLI.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

type SQLite struct {
	db         *sql.DB
	assessment *assessmentRepository
}

var _ interfaces.Repository = &SQLite{}

// New opens (or creates) the database file at path. ":memory:" opens a
// private in-memory database.
func New(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, goerr.Wrap(err, "failed to create data directory", goerr.V("path", path))
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, goerr.Wrap(err, "failed to apply pragma", goerr.V("pragma", p))
		}
	}

	s := &SQLite{
		db:         db,
		assessment: newAssessmentRepository(db),
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS assessments (
			id         TEXT PRIMARY KEY,
			state_name TEXT NOT NULL,
			status     TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			body       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_assessments_updated_at ON assessments(updated_at DESC);
		CREATE INDEX IF NOT EXISTS idx_assessments_status ON assessments(status, updated_at DESC);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return goerr.Wrap(err, "failed to migrate sqlite schema")
	}
	return nil
}

func (s *SQLite) Assessment() interfaces.AssessmentRepository {
	return s.assessment
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
