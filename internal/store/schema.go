// schema.go creates and upgrades the registry schema.
//
// Each file under sql/ is one schema step, applied in name order (hence the
// 001_, 002_ prefixes). PRAGMA user_version records how many steps a
// database has. Init applies the missing steps, each in its own transaction
// together with the user_version bump, so a failed step leaves the database
// at the previous version. A database whose user_version is higher than the
// number of steps was written by a newer docver and is refused.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
)

//go:embed sql/*.sql
var schemas embed.FS

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrSchemaTooNew is returned by Init for a database created by a newer
// version of docver.
var ErrSchemaTooNew = errors.New("database schema is newer than this docver supports")

// schemaSteps returns the embedded schema file names in apply order.
func schemaSteps() ([]string, error) {
	entries, err := fs.ReadDir(schemas, "sql")
	if err != nil {
		return nil, fmt.Errorf("read schema directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// SchemaVersion returns the number of schema steps applied to the database.
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// migrate applies the schema steps the database is missing.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	steps, err := schemaSteps()
	if err != nil {
		return err
	}
	have, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if have > len(steps) {
		return fmt.Errorf("%w: database at version %d, latest known is %d", ErrSchemaTooNew, have, len(steps))
	}

	for i := have; i < len(steps); i++ {
		if err := s.applyStep(ctx, steps[i], i+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) applyStep(ctx context.Context, name string, version int) error {
	data, err := schemas.ReadFile("sql/" + name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", name, err)
		}
		// PRAGMA takes no bind parameters; version is an int we produced.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
			return fmt.Errorf("set schema version %d: %w", version, err)
		}
		return nil
	})
}
