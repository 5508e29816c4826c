// interfaces.go defines the storage abstraction for document persistence.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are granular (Reader, Writer,
// Maintainer) so consumers only depend on the capabilities they need.
//
// Design: documents are never deleted. Archive marks a document as retired
// while keeping every version readable.

package store

import (
	"context"
	"database/sql"

	"github.com/jpl-au/docver/internal/rewrite"
)

// Querier issues parameterised statements. It is satisfied by *sql.DB,
// *sql.Conn and *sql.Tx, so helpers run unchanged inside or outside a
// transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Reader defines read-only operations.
type Reader interface {
	// List returns documents ordered by id, each with its versions.
	List(ctx context.Context, opts ListOptions) ([]DocumentView, error)

	// Get returns one document with its versions, or nil when no document
	// has that id.
	Get(ctx context.Context, id int64) (*DocumentView, error)

	// Exists checks document presence without loading versions.
	Exists(ctx context.Context, id int64) (bool, error)

	// Stats returns aggregate counts.
	Stats(ctx context.Context) (*Stats, error)

	// Check reports documents without versions and versions whose folder
	// no longer matches their document's name.
	Check(ctx context.Context) ([]Issue, error)
}

// Writer defines mutating operations. Each runs in its own transaction.
type Writer interface {
	// Create inserts a document and its first version together and returns
	// the new document id.
	Create(ctx context.Context, name string, createdAt int64, filePath string) (int64, error)

	// AddVersion appends a version and returns its id. Returns ErrNotFound
	// if the document does not exist.
	AddVersion(ctx context.Context, docID int64, createdAt int64, filePath string) (int64, error)

	// Archive sets the archived date to now. Returns ErrNotFound if the
	// document does not exist.
	Archive(ctx context.Context, docID int64) error

	// Rename updates the document name and rewrites every version path.
	Rename(ctx context.Context, docID int64, newName string) (*rewrite.Report, error)

	// PreviewRename computes the rename report without writing.
	PreviewRename(ctx context.Context, docID int64, newName string) (*rewrite.Report, error)
}

// Maintainer defines connection and lifecycle operations.
type Maintainer interface {
	// Close releases the connection pool.
	Close() error

	// DB exposes the underlying pool for extensions needing custom tables.
	DB() *sql.DB

	// Conn runs fn on a connection scoped to the call.
	Conn(ctx context.Context, fn func(q Querier) error) error

	// Tx runs fn in a transaction on a connection scoped to the call.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error
}

// Store defines the persistence interface for documents.
type Store interface {
	Reader
	Writer
	Maintainer
}
