// read.go implements document retrieval operations for the SQLite store.
//
// Separated from the write files to isolate read-only query logic. These
// operations never modify data.
//
// Design: List and Get share one query shape. Documents are selected first
// and fully drained, then each document's versions are selected on the same
// scoped connection. Get is List narrowed to a single id.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// List returns documents ordered by id, each with its versions ordered by
// created date. No partial result is returned on error.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]DocumentView, error) {
	var conditions []string
	switch {
	case opts.ArchivedOnly:
		conditions = append(conditions, `archived_date IS NOT NULL`)
	case opts.ActiveOnly:
		conditions = append(conditions, `archived_date IS NULL`)
	}

	var views []DocumentView
	err := s.Conn(ctx, func(q Querier) error {
		var err error
		views, err = queryViews(ctx, q, conditions)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Get returns the document with the given id, or nil if none exists.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*DocumentView, error) {
	var views []DocumentView
	err := s.Conn(ctx, func(q Querier) error {
		var err error
		views, err = queryViews(ctx, q, []string{`id = ?`}, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

// queryViews selects documents matching conditions and attaches their
// versions.
func queryViews(ctx context.Context, q Querier, conditions []string, args ...any) ([]DocumentView, error) {
	var b strings.Builder
	b.WriteString(`SELECT id, file_name, archived_date FROM document`)
	if len(conditions) > 0 {
		b.WriteString(` WHERE `)
		b.WriteString(strings.Join(conditions, ` AND `))
	}
	b.WriteString(` ORDER BY id`)

	rows, err := q.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	views := make([]DocumentView, 0, len(docs))
	for _, d := range docs {
		versions, err := queryVersions(ctx, q, d.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, DocumentView{Document: d, Versions: versions})
	}
	return views, nil
}

// queryVersions returns the versions of one document in creation order.
// Ties on created date fall back to insertion order.
func queryVersions(ctx context.Context, q Querier, docID int64) ([]Version, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, doc_id, file_path, created_date
		FROM version WHERE doc_id = ? ORDER BY created_date, id`, docID)
	if err != nil {
		return nil, fmt.Errorf("list versions of document %d: %w", docID, err)
	}
	versions, err := scanVersions(rows)
	if err != nil {
		return nil, fmt.Errorf("list versions of document %d: %w", docID, err)
	}
	return versions, nil
}

// Exists checks if a document with the given id exists, archived or not.
func (s *SQLiteStore) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := s.Conn(ctx, func(q Querier) error {
		var err error
		ok, err = exists(ctx, q, id)
		return err
	})
	return ok, err
}

// exists uses SELECT 1 ... LIMIT 1; only presence matters.
func exists(ctx context.Context, q Querier, id int64) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM document WHERE id = ? LIMIT 1`, id).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check document %d: %w", id, err)
	}
	return true, nil
}
