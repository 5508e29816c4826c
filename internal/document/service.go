// Package document provides the document/version repository backed by a
// Store implementation. It exposes a `Service` which validates input, runs
// each operation against the store, logs failures and notifies extensions.
package document

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/config"
	"github.com/jpl-au/docver/internal/repo"
	"github.com/jpl-au/docver/internal/store"
)

// Service provides document operations backed by a Store.
type Service struct {
	store   *store.SQLiteStore
	dbPath  string
	maxName int
	maxPath int
	logger  *slog.Logger
	extCtx  extension.Context // for firing events to extensions
}

// Option configures a Service.
type Option func(*options)

type options struct {
	cfg    *config.Config
	logger *slog.Logger
}

// WithConfig supplies configuration instead of loading it from disk.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets the diagnostic logger. The default writes text to stderr
// at the configured log.level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Service for an initialised repository. The db parameter
// names the database (empty for default); dir, if set, is the project
// directory holding .docver and skips discovery. Configuration is loaded
// from disk unless WithConfig is given.
// Returns repo.ErrNotInitialised if no matching database is found.
func New(db, dir string, opts ...Option) (*Service, error) {
	dbPath, err := repo.Locate(db, dir)
	if err != nil {
		return nil, err
	}

	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err // config.Load provides detailed, actionable error messages
		}
		o.cfg = cfg
	}
	return open(dbPath, o)
}

// Open creates a Service on the database file at dbPath, creating the file
// if needed. Intended for library use and tests where no .docver
// repository exists. Configuration defaults apply unless WithConfig is given.
func Open(dbPath string, opts ...Option) (*Service, error) {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.cfg == nil {
		o.cfg = &config.Config{}
	}

	return open(dbPath, o)
}

func open(dbPath string, o options) (*Service, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	// Upgrades an older schema and refuses one from a newer docver.
	if err := s.Init(); err != nil {
		s.Close()
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: o.cfg.LogLevel()}))
	}

	return &Service{
		store:   s,
		dbPath:  dbPath,
		maxName: o.cfg.MaxName(),
		maxPath: o.cfg.MaxPath(),
		logger:  logger.With("component", "document"),
	}, nil
}

// Init initialises a new docver repository.
// If dir is empty, uses current directory; otherwise uses dir.
// The db parameter specifies which database to create (empty for default).
// If local is true, the database is added to .gitignore (not committed).
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

// Close checkpoints the WAL and closes the connection pool. Call once, when
// the process is done with the service.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		s.logger.Warn("checkpoint on close failed", "err", err)
	}
	return s.store.Close()
}

// ReloadConfig reloads configuration from disk and updates cached limits.
// Call this after modifying config to ensure the service uses new settings.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.maxName = cfg.MaxName()
	s.maxPath = cfg.MaxPath()
	return nil
}

// SetExtensionContext sets the extension context for firing events.
// Called from cmd/init_extensions.go after creating the context.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// Logger returns the service's diagnostic logger.
func (s *Service) Logger() *slog.Logger {
	return s.logger
}

// fireEvent notifies all registered extension event handlers.
//
// Handler errors are logged but not propagated: events are notifications,
// not veto points, and the operation has already committed.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, f := range extension.Dispatch(s.extCtx, e) {
		s.logger.Warn("event handler failed",
			"ext", f.Extension,
			"event", string(e.EventType()),
			"document", e.EventDocument(),
			"err", f.Err)
	}
}

// fail logs a store failure and wraps it as a StoreError. A missing document
// is a business outcome, not a store failure, and is returned unchanged.
func (s *Service) fail(ctx context.Context, op string, id int64, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		s.logger.DebugContext(ctx, "document not found", "op", op, "document", id)
		return err
	}
	s.logger.ErrorContext(ctx, "store operation failed", "op", op, "document", id, "err", err)
	return &StoreError{Op: op, Err: err}
}

// DB returns the underlying connection pool for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Dir returns the directory holding the database file.
func (s *Service) Dir() string {
	return filepath.Dir(s.dbPath)
}

// Tx runs fn within a transaction on a scoped connection. Exposed for
// extensions that keep their own tables next to the core schema.
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.store.Tx(ctx, fn)
}

// Checkpoint flushes the WAL to the main database file.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
