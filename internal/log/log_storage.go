// log_storage.go persists audit entries in SQLite.
//
// Write failures are reported on stderr and otherwise dropped: an operation
// that succeeded is not undone because its audit row could not be written.

package log

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// ErrClosed is returned by Query when the audit log is not open.
var ErrClosed = errors.New("audit log not open")

// schema holds the audit database migrations; entry i brings the database
// to user_version i+1.
var schema = []string{
	`CREATE TABLE log (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		start       INTEGER NOT NULL,
		end         INTEGER NOT NULL,
		project     TEXT NOT NULL,
		source      TEXT NOT NULL,
		author      TEXT,
		action      TEXT NOT NULL,
		document_id INTEGER,
		name        TEXT,
		file_path   TEXT,
		result_id   INTEGER,
		success     INTEGER NOT NULL,
		error       TEXT,
		detail      TEXT
	);
	CREATE INDEX idx_log_start ON log(start);
	CREATE INDEX idx_log_document ON log(project, document_id);`,
}

const columns = `id, start, end, project, source, author, action, document_id,
	name, file_path, result_id, success, error, detail`

// Logger writes audit entries for one project at a time.
type Logger struct {
	db      *sql.DB
	insert  *sql.Stmt
	project string
}

func open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate audit log: %w", err)
	}
	insert, err := db.Prepare(`INSERT INTO log (start, end, project, source, author,
		action, document_id, name, file_path, result_id, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Logger{db: db, insert: insert}, nil
}

func (l *Logger) close() {
	l.insert.Close()
	l.db.Close()
}

func migrate(db *sql.DB) error {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return err
	}
	if v > len(schema) {
		return fmt.Errorf("audit log schema %d is newer than this docver supports (%d)", v, len(schema))
	}
	for ; v < len(schema); v++ {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(schema[v]); err != nil {
			tx.Rollback()
			return err
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Logger) write(e Entry) {
	var detail sql.NullString
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			detail = sql.NullString{String: string(b), Valid: true}
		}
	}
	project := e.Project
	if project == "" {
		project = l.project
	}
	_, err := l.insert.Exec(
		e.Start.UnixMilli(), e.End.UnixMilli(), project, e.Source,
		nullString(e.Author), e.Action, nullID(e.Document), nullString(e.Name),
		nullString(e.Path), nullID(e.Result), e.Success, nullString(e.Error), detail,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docver: audit log write failed: %v\n", err)
	}
}

func (l *Logger) query(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.Project != "" {
		where = append(where, "project = ?")
		args = append(args, f.Project)
	}
	if f.Document != 0 {
		where = append(where, "document_id = ?")
		args = append(args, f.Document)
	}
	if f.Failed {
		where = append(where, "success = 0")
	}
	if !f.Since.IsZero() {
		where = append(where, "start >= ?")
		args = append(args, f.Since.UnixMilli())
	}

	q := "SELECT " + columns + " FROM log"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("query audit log: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e                       Entry
		start, end              int64
		author, name, path, msg sql.NullString
		detail                  sql.NullString
		document, result        sql.NullInt64
	)
	err := rows.Scan(&e.ID, &start, &end, &e.Project, &e.Source, &author, &e.Action,
		&document, &name, &path, &result, &e.Success, &msg, &detail)
	if err != nil {
		return e, err
	}
	e.Start, e.End = time.UnixMilli(start), time.UnixMilli(end)
	e.Author, e.Name, e.Path, e.Error = author.String, name.String, path.String, msg.String
	e.Document, e.Result = document.Int64, result.Int64
	if detail.Valid {
		if err := json.Unmarshal([]byte(detail.String), &e.Detail); err != nil {
			return e, fmt.Errorf("entry %d detail: %w", e.ID, err)
		}
	}
	return e, nil
}

// dbPathFunc locates the audit database. Tests point it at a temp dir.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// No HOME, as in some containers.
		home = "."
	}
	return filepath.Join(home, ".docver", "log", "docver-log.db")
}

func dbPath() string { return dbPathFunc() }

// DBPath returns the path to the audit database.
func DBPath() string { return dbPath() }

// HashProject returns the identifier entries for the .docver directory dir
// are recorded under. Relative paths are made absolute first so every way
// of reaching a project yields the same hash.
func HashProject(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return hash(dir)
}

// hash is a 64-bit BLAKE2b of s as 16 hex characters.
func hash(s string) string {
	h, err := blake2b.New(8, nil)
	if err != nil {
		// Only a bad size or key length fails.
		panic("blake2b: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullID(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}
