// write.go implements document creation and modification operations.
//
// Separated from the read file to isolate mutating operations. Versions are
// append-only here; the only statement that changes an existing version is
// the path rewrite issued by Rename (write_rename.go).
//
// Design: Create spans two inserts and must appear atomic. Both run in one
// transaction, and the version insert uses the id returned by the document
// insert, so a failure on either leaves nothing behind.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Create inserts a document and its first version and returns the document
// id.
func (s *SQLiteStore) Create(ctx context.Context, name string, createdAt int64, filePath string) (int64, error) {
	var id int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO document (file_name) VALUES (?)`, name)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}

		if _, err := insertVersion(ctx, tx, id, createdAt, filePath); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AddVersion appends a version to an existing document and returns the new
// version id. Archived documents accept new versions.
func (s *SQLiteStore) AddVersion(ctx context.Context, docID int64, createdAt int64, filePath string) (int64, error) {
	var id int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, docID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		id, err = insertVersion(ctx, tx, docID, createdAt, filePath)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func insertVersion(ctx context.Context, q Querier, docID, createdAt int64, filePath string) (int64, error) {
	res, err := q.ExecContext(ctx, `INSERT INTO version (doc_id, file_path, created_date) VALUES (?, ?, ?)`,
		docID, filePath, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert version for document %d: %w", docID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert version for document %d: %w", docID, err)
	}
	return id, nil
}

// Archive sets the document's archived date to now. Archiving an archived
// document refreshes the timestamp; there is no way back to active.
func (s *SQLiteStore) Archive(ctx context.Context, docID int64) error {
	return s.Conn(ctx, func(q Querier) error {
		res, err := q.ExecContext(ctx, `UPDATE document SET archived_date = ? WHERE id = ?`, time.Now().Unix(), docID)
		if err != nil {
			return fmt.Errorf("archive document %d: %w", docID, err)
		}
		if err := rowsAffected(res); err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return fmt.Errorf("archive document %d: %w", docID, err)
		}
		return nil
	})
}
