// cascade.go applies the path rewrite to every version of a document.
//
// Cascade never opens or commits a transaction itself. The caller hands it
// the transaction that also renamed the document, so a failure part way
// through rolls back the name and every path together.

package rewrite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Querier is the subset of *sql.Tx that Cascade needs.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Change records the rewrite of one version's path.
type Change struct {
	VersionID int64  `json:"version_id"`
	OldPath   string `json:"old_path"`
	NewPath   string `json:"new_path"`
}

// Unchanged reports whether the rewrite left the path as it was.
func (c Change) Unchanged() bool {
	return c.OldPath == c.NewPath
}

// Report describes the outcome of a rename cascade.
type Report struct {
	DocumentID int64
	OldName    string
	NewName    string
	Changes    []Change
	// Warnings are conditions the caller may want to reconcile. They never
	// abort the rename.
	Warnings []error
}

// HasWarnings reports whether the cascade raised any warnings.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// ReportJSON is the API-friendly representation of a Report.
type ReportJSON struct {
	DocumentID int64    `json:"document_id"`
	OldName    string   `json:"old_name"`
	NewName    string   `json:"new_name"`
	Changes    []Change `json:"changes"`
	Warnings   []string `json:"warnings,omitempty"`
}

// ToJSON converts a Report to its API representation.
func (r *Report) ToJSON() ReportJSON {
	j := ReportJSON{
		DocumentID: r.DocumentID,
		OldName:    r.OldName,
		NewName:    r.NewName,
		Changes:    r.Changes,
	}
	if j.Changes == nil {
		j.Changes = []Change{}
	}
	for _, w := range r.Warnings {
		j.Warnings = append(j.Warnings, w.Error())
	}
	return j
}

// MarshalJSON encodes the report via ToJSON.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToJSON())
}

// CascadeError reports the version whose update failed. Applied holds the
// changes written before the failure; they only persist if the caller
// commits despite the error.
type CascadeError struct {
	DocumentID int64
	VersionID  int64
	Applied    []Change
	Err        error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("rewrite version %d of document %d: %v", e.VersionID, e.DocumentID, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

type version struct {
	id   int64
	path string
}

// Cascade rewrites the path of every version owned by docID. With dryRun the
// report is computed but nothing is written.
//
// Updates are keyed by version id, so two versions sharing a path are each
// rewritten exactly once. Distinct paths that would merge into one are kept
// apart where possible and reported as ErrPathCollision otherwise.
func Cascade(ctx context.Context, q Querier, docID int64, oldName, newName string, dryRun bool) (*Report, error) {
	report := &Report{DocumentID: docID, OldName: oldName, NewName: newName}

	versions, err := load(ctx, q, docID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		report.Warnings = append(report.Warnings, fmt.Errorf("%w: document %d", ErrNoVersions, docID))
		return report, nil
	}

	paths, err := plan(docID, versions, oldName, newName)
	if err != nil {
		return nil, err
	}
	report.Warnings = append(report.Warnings, collisions(versions, paths)...)

	for i, v := range versions {
		np := paths[i]
		c := Change{VersionID: v.id, OldPath: v.path, NewPath: np}

		if !dryRun && !c.Unchanged() {
			_, err := q.ExecContext(ctx, `UPDATE version SET file_path = ? WHERE id = ? AND doc_id = ?`, np, v.id, docID)
			if err != nil {
				return nil, &CascadeError{DocumentID: docID, VersionID: v.id, Applied: report.Changes, Err: err}
			}
		}
		report.Changes = append(report.Changes, c)
	}
	return report, nil
}

// plan computes the new path of every version. A replaced stem that lands
// on a path another old path also claims keeps its old stem as a suffix.
func plan(docID int64, versions []version, oldName, newName string) ([]string, error) {
	paths := make([]string, len(versions))
	matched := make([]bool, len(versions))
	claims := make(map[string]map[string]bool)
	for i, v := range versions {
		np, ok, err := rewrite(v.path, oldName, newName)
		if err != nil {
			return nil, &CascadeError{DocumentID: docID, VersionID: v.id, Err: err}
		}
		paths[i], matched[i] = np, ok
		if claims[np] == nil {
			claims[np] = make(map[string]bool)
		}
		claims[np][v.path] = true
	}

	for i, v := range versions {
		if !matched[i] && len(claims[paths[i]]) > 1 {
			paths[i] = keepStem(paths[i], v.path, newName)
		}
	}
	return paths, nil
}

// collisions returns one ErrPathCollision warning per new path still shared
// by versions with different old paths.
func collisions(versions []version, paths []string) []error {
	first := make(map[string]int)
	reported := make(map[string]bool)
	var warnings []error
	for i, v := range versions {
		j, seen := first[paths[i]]
		if !seen {
			first[paths[i]] = i
			continue
		}
		if versions[j].path == v.path || reported[paths[i]] {
			continue
		}
		reported[paths[i]] = true
		warnings = append(warnings, fmt.Errorf("%w: versions %d and %d both become %s",
			ErrPathCollision, versions[j].id, v.id, paths[i]))
	}
	return warnings
}

// load reads every version of docID. The rows are drained and closed before
// returning so the caller can issue updates on the same connection.
func load(ctx context.Context, q Querier, docID int64) ([]version, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, file_path FROM version WHERE doc_id = ? ORDER BY created_date, id`, docID)
	if err != nil {
		return nil, fmt.Errorf("query versions: %w", err)
	}
	defer rows.Close()

	var out []version
	for rows.Next() {
		var v version
		if err := rows.Scan(&v.id, &v.path); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read versions: %w", err)
	}
	return out, nil
}
