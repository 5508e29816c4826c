// write_rename.go implements document rename with the version path cascade.
//
// Separated from write.go because rename is the one operation that rewrites
// existing rows. The name update and every path update share a transaction:
// if any version fails to update, the document keeps its old name and every
// version keeps its old path.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jpl-au/docver/internal/rewrite"
)

// Rename changes a document's name and rewrites the path of each of its
// versions. Returns ErrNotFound if the document does not exist. A document
// without versions is renamed and the report carries rewrite.ErrNoVersions.
func (s *SQLiteStore) Rename(ctx context.Context, docID int64, newName string) (*rewrite.Report, error) {
	return s.rename(ctx, docID, newName, false)
}

// PreviewRename returns the report Rename would produce without changing
// anything.
func (s *SQLiteStore) PreviewRename(ctx context.Context, docID int64, newName string) (*rewrite.Report, error) {
	return s.rename(ctx, docID, newName, true)
}

func (s *SQLiteStore) rename(ctx context.Context, docID int64, newName string, dryRun bool) (*rewrite.Report, error) {
	var report *rewrite.Report
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		var oldName string
		err := tx.QueryRowContext(ctx, `SELECT file_name FROM document WHERE id = ?`, docID).Scan(&oldName)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read document %d: %w", docID, err)
		}

		if !dryRun {
			if _, err := tx.ExecContext(ctx, `UPDATE document SET file_name = ? WHERE id = ?`, newName, docID); err != nil {
				return fmt.Errorf("rename document %d: %w", docID, err)
			}
		}

		report, err = rewrite.Cascade(ctx, tx, docID, oldName, newName, dryRun)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
