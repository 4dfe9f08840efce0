package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/repository/firestore"
	"github.com/mita-sat/sstool/pkg/repository/memory"
	"github.com/mita-sat/sstool/pkg/repository/sqlite"
	"github.com/urfave/cli/v3"
)

// Repository backends
const (
	BackendSQLite    = "sqlite"
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Repository holds the assessment store flags
type Repository struct {
	backend             string
	sqlitePath          string
	firestoreProjectID  string
	firestoreDatabaseID string
	collectionPrefix    string
}

// Flags returns CLI flags for the assessment store
func (x *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Assessment store [sqlite|memory|firestore]",
			Category:    "Repository",
			Value:       BackendSQLite,
			Destination: &x.backend,
			Sources:     cli.EnvVars("SSTOOL_REPOSITORY_BACKEND"),
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file (default: <user config dir>/sstool/sstool.db)",
			Category:    "Repository",
			Destination: &x.sqlitePath,
			Sources:     cli.EnvVars("SSTOOL_SQLITE_PATH"),
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Google Cloud project ID for Firestore",
			Category:    "Repository",
			Destination: &x.firestoreProjectID,
			Sources:     cli.EnvVars("SSTOOL_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Repository",
			Value:       "(default)",
			Destination: &x.firestoreDatabaseID,
			Sources:     cli.EnvVars("SSTOOL_FIRESTORE_DATABASE_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix of Firestore collection names",
			Category:    "Repository",
			Destination: &x.collectionPrefix,
			Sources:     cli.EnvVars("SSTOOL_FIRESTORE_COLLECTION_PREFIX"),
		},
	}
}

func (x Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("sqlite_path", x.sqlitePath),
		slog.String("firestore_project_id", x.firestoreProjectID),
		slog.String("firestore_database_id", x.firestoreDatabaseID),
	)
}

// SetBackend overrides the backend, mainly for tests
func (x *Repository) SetBackend(backend string) {
	x.backend = backend
}

// SetSQLitePath overrides the database file path
func (x *Repository) SetSQLitePath(p string) {
	x.sqlitePath = p
}

// FirestoreProjectID returns the configured project
func (x *Repository) FirestoreProjectID() string {
	return x.firestoreProjectID
}

// FirestoreDatabaseID returns the configured database
func (x *Repository) FirestoreDatabaseID() string {
	return x.firestoreDatabaseID
}

// CollectionPrefix returns the Firestore collection prefix
func (x *Repository) CollectionPrefix() string {
	return x.collectionPrefix
}

// Configure opens the selected backend
func (x *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch x.backend {
	case BackendSQLite, "":
		p := x.sqlitePath
		if p == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, goerr.Wrap(err, "failed to resolve user config directory")
			}
			p = filepath.Join(dir, "sstool", "sstool.db")
		}
		repo, err := sqlite.New(ctx, p)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open sqlite repository")
		}
		return repo, nil

	case BackendMemory:
		return memory.New(), nil

	case BackendFirestore:
		if x.firestoreProjectID == "" {
			return nil, goerr.Wrap(ErrMissingOption, "firestore-project-id is required for firestore backend")
		}
		var opts []firestore.Option
		if x.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(x.collectionPrefix))
		}
		repo, err := firestore.New(ctx, x.firestoreProjectID, x.firestoreDatabaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create firestore repository")
		}
		return repo, nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unknown repository backend", goerr.V(BackendKey, x.backend))
	}
}
