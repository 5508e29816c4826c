// Package service defines the shared interface for document operations.
// Commands and extensions depend on this interface rather than concrete
// implementations, enabling testing with mocks and future backend changes.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpl-au/docver/internal/rewrite"
	"github.com/jpl-au/docver/internal/store"
)

// Service defines all document operations.
//
// Extensions should use document.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := document.New("", "")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	doc, err := svc.Get(ctx, 1)
//
// Errors: invalid input is returned as *validate.Error before any statement
// runs. Mutations on a missing document return store.ErrNotFound. Any other
// store failure is returned as *document.StoreError.
type Service interface {
	// Close releases database resources. Always defer this after New().
	Close() error

	// List returns documents ordered by id, each with its versions ordered
	// by created date. The zero ListOptions lists archived documents too.
	List(ctx context.Context, opts store.ListOptions) ([]store.DocumentView, error)

	// Get returns one document with its versions. A missing document is
	// (nil, nil), not an error.
	Get(ctx context.Context, id int64) (*store.DocumentView, error)

	// Create inserts a document and its first version atomically and
	// returns the document id.
	Create(ctx context.Context, title string, created time.Time, filePath string) (int64, error)

	// AddVersion appends a version to a document and returns the version id.
	AddVersion(ctx context.Context, id int64, created time.Time, filePath string) (int64, error)

	// Archive marks a document archived. Archiving again refreshes the date.
	Archive(ctx context.Context, id int64) error

	// Rename changes a document's name and rewrites every version path in
	// one transaction. Non-fatal conditions are listed in Report.Warnings.
	Rename(ctx context.Context, id int64, newName string) (*rewrite.Report, error)

	// PreviewRename reports what Rename would change without writing.
	PreviewRename(ctx context.Context, id int64, newName string) (*rewrite.Report, error)

	// Check reports consistency issues across all documents.
	Check(ctx context.Context) ([]store.Issue, error)

	// Stats returns aggregate counts.
	Stats(ctx context.Context) (*store.Stats, error)

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// DB exposes the connection pool for extensions with their own tables.
	DB() *sql.DB

	// DBPath returns the path to the database file.
	DBPath() string

	// Tx runs fn in a transaction on a scoped connection.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
