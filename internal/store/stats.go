// stats.go implements aggregate and consistency queries.
//
// Separated to collect read-only operations distinct from CRUD. Check is the
// repair-pass view of the data: it lists documents and versions that break
// the expectations rename and create are meant to uphold, without fixing
// anything itself.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/docver/internal/path"
)

// Stats returns aggregate counts.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.Conn(ctx, func(q Querier) error {
		err := q.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(archived_date) FROM document`).
			Scan(&st.Documents, &st.Archived)
		if err != nil {
			return fmt.Errorf("count documents: %w", err)
		}

		var oldest, newest sql.NullInt64
		err = q.QueryRowContext(ctx, `SELECT COUNT(*), MIN(created_date), MAX(created_date) FROM version`).
			Scan(&st.Versions, &oldest, &newest)
		if err != nil {
			return fmt.Errorf("count versions: %w", err)
		}
		st.OldestVersion = oldest.Int64
		st.NewestVersion = newest.Int64
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Check scans every document for consistency problems. Issues are ordered
// by document id, then version id.
func (s *SQLiteStore) Check(ctx context.Context) ([]Issue, error) {
	var issues []Issue
	err := s.Conn(ctx, func(q Querier) error {
		views, err := queryViews(ctx, q, nil)
		if err != nil {
			return err
		}
		for _, v := range views {
			issues = append(issues, CheckView(v)...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// CheckView reports the issues of a single document.
func CheckView(v DocumentView) []Issue {
	if len(v.Versions) == 0 {
		return []Issue{{
			Kind:       IssueNoVersions,
			DocumentID: v.ID,
			Detail:     fmt.Sprintf("document %q has no versions", v.Name),
		}}
	}

	var issues []Issue
	for _, ver := range v.Versions {
		// Bare filenames have no folder to compare.
		if folder := path.Folder(ver.FilePath); folder != "" && folder != v.Name {
			issues = append(issues, Issue{
				Kind:       IssuePathMismatch,
				DocumentID: v.ID,
				VersionID:  ver.ID,
				Detail:     fmt.Sprintf("folder of %q does not match name %q", ver.FilePath, v.Name),
			})
		}
	}
	return issues
}
