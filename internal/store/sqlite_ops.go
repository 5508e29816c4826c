// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection pooling,
// driver registration) from business logic. This is the only file that imports
// the SQLite driver.
//
// Design: the pool is opened once per process and closed once. Pragmas are
// passed in the DSN rather than executed after Open, because database/sql may
// open further connections later and each needs foreign_keys enabled. WAL
// with a busy timeout lets the MCP server read while the CLI writes.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// pragmas are applied by the driver to every pooled connection.
//
//   - foreign_keys: versions must reference an existing document
//   - busy_timeout: wait up to 5s on a lock instead of failing immediately
//   - journal_mode WAL: readers do not block the writer
//   - synchronous NORMAL: safe with WAL, avoids an fsync per commit
const pragmas = "?_pragma=foreign_keys(1)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=journal_mode(WAL)" +
	"&_pragma=synchronous(NORMAL)"

// SQLiteStore implements Store on a single process-lifetime connection pool.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store when the
// process is done with it, not after each operation.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// sql.Open is lazy; surface a bad path or locked file here rather than
	// on the first query.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init brings the schema up to date. Safe to call on every open.
func (s *SQLiteStore) Init() error {
	return s.migrate(context.Background())
}

// Close releases the connection pool. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying pool for extensions that need custom tables.
// Extensions should not modify core tables directly.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// scanDoc extracts a Document from a database row, handling the nullable
// archive date.
func scanDoc(sc scanner) (Document, error) {
	var d Document
	var archived sql.NullInt64

	if err := sc.Scan(&d.ID, &d.Name, &archived); err != nil {
		return d, err
	}
	if archived.Valid {
		d.ArchivedAt = &archived.Int64
	}
	return d, nil
}

// scanDocuments drains rows into a slice and closes them, so the caller can
// issue the next query on the same connection.
func scanDocuments(rows *sql.Rows) ([]Document, error) {
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// scanVersions drains rows of (id, doc_id, file_path, created_date).
func scanVersions(rows *sql.Rows) ([]Version, error) {
	defer rows.Close()

	versions := []Version{}
	for rows.Next() {
		var v Version
		if err := rows.Scan(&v.ID, &v.DocumentID, &v.FilePath, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// rowsAffected maps an update touching no rows to ErrNotFound.
func rowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isNotFound reports whether err is a missing-row condition.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound)
}
