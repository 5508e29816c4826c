// Package log records the docver audit trail: one row per CLI command or
// MCP tool call, kept in ~/.docver/log/docver-log.db and shared by every
// project on the machine. Rows carry a hash of the project directory rather
// than the path itself.
//
// Diagnostics (store failures, rename warnings) are not audit entries; the
// document service sends those to log/slog.
//
// Entries are built fluently and written once the operation has finished:
//
//	log.Event("document:rename", "rename").
//		Author(cmd.Author()).
//		Document(id).
//		Name(newName).
//		Detail("changed", len(report.Changes)).
//		Write(err)
//
// Sources are "{extension}:{command}" for the CLI ("document:ls") and
// "mcp:{tool}" for MCP calls ("mcp:docver_rename").
package log

import (
	"context"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	active *Logger
)

// Entry is one audit record. Zero ids and empty strings mean "not
// applicable" and are stored as NULL.
type Entry struct {
	ID       int64          `json:"id,omitempty"`
	Project  string         `json:"project,omitempty"`
	Source   string         `json:"source"`
	Action   string         `json:"action"`
	Author   string         `json:"author,omitempty"`
	Document int64          `json:"document_id,omitempty"` // document targeted
	Name     string         `json:"name,omitempty"`        // document name supplied
	Path     string         `json:"path,omitempty"`        // version path supplied
	Result   int64          `json:"result_id,omitempty"`   // id created
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	Detail   map[string]any `json:"detail,omitempty"`
}

// Duration is how long the operation ran.
func (e Entry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Builder accumulates an Entry. Start with [Event] and finish with
// [Builder.Write].
type Builder struct {
	e Entry
}

// Event starts an entry for action, timed from now.
func Event(source, action string) *Builder {
	return &Builder{e: Entry{Source: source, Action: action, Start: time.Now()}}
}

// Author sets who acted. MCP calls use the configured author or "mcp".
func (b *Builder) Author(author string) *Builder {
	b.e.Author = author
	return b
}

// Document sets the target document.
func (b *Builder) Document(id int64) *Builder {
	b.e.Document = id
	return b
}

// Name sets the document name given to create or rename.
func (b *Builder) Name(name string) *Builder {
	b.e.Name = name
	return b
}

// Path sets the version file path given to create or add-version.
func (b *Builder) Path(path string) *Builder {
	b.e.Path = path
	return b
}

// Result sets the id the operation produced: the document for create, the
// version for add-version.
func (b *Builder) Result(id int64) *Builder {
	b.e.Result = id
	return b
}

// Detail attaches anything the fixed fields do not cover, such as the old
// name of a rename or the filters of a listing.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.e.Detail == nil {
		b.e.Detail = make(map[string]any)
	}
	b.e.Detail[key] = value
	return b
}

// Write stamps the end time, marks the entry failed when err is non-nil
// and records it.
func (b *Builder) Write(err error) {
	b.e.End = time.Now()
	b.e.Success = err == nil
	if err != nil {
		b.e.Error = err.Error()
	}
	Log(b.e)
}

// Open opens the audit database, creating it on first use. Later calls are
// no-ops until Close.
func Open() error {
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		return nil
	}
	l, err := open(dbPath())
	if err != nil {
		return err
	}
	active = l
	return nil
}

// SetProject scopes subsequent entries to the .docver directory dir.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		active.project = HashProject(dir)
	}
}

// Project returns the hash entries are currently recorded under, or ""
// when no project is set.
func Project() string {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return ""
	}
	return active.project
}

// Log records e. Without an open logger it does nothing.
func Log(e Entry) {
	mu.Lock()
	l := active
	mu.Unlock()
	if l != nil {
		l.write(e)
	}
}

// Filter narrows a [Query].
type Filter struct {
	Project  string    // project hash, "" for every project
	Document int64     // 0 for every document
	Failed   bool      // only failed operations
	Since    time.Time // zero for no lower bound
	Limit    int       // newest n entries, 0 for all
}

// Query returns matching entries, newest first.
func Query(ctx context.Context, f Filter) ([]Entry, error) {
	mu.Lock()
	l := active
	mu.Unlock()
	if l == nil {
		return nil, ErrClosed
	}
	return l.query(ctx, f)
}

// Close closes the audit database.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		active.close()
		active = nil
	}
}
