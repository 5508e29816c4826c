// context.go defines the Context interface for extension access to docver internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// access what they need without reaching into arbitrary internals.
//
// Design: Extensions receive Context during Init(), not at construction, to
// support the two-phase initialisation pattern where extensions register
// before the service is available.

package extension

import (
	"database/sql"
	"log/slog"

	"github.com/jpl-au/docver/internal/config"
	"github.com/jpl-au/docver/internal/service"
)

// Context provides extensions controlled access to docver internals.
type Context interface {
	// Service returns the document service.
	Service() service.Service

	// DB exposes the database for extensions needing custom tables.
	// Extensions should create their own tables, not modify core tables.
	DB() *sql.DB

	// Config returns user configuration.
	Config() *config.Config

	// Logger returns the diagnostic logger shared with the service.
	Logger() *slog.Logger
}

// extContext implements Context.
type extContext struct {
	svc    service.Service
	db     *sql.DB
	cfg    *config.Config
	logger *slog.Logger
}

// NewContext creates a new extension context. A nil logger falls back to
// slog.Default().
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config, logger *slog.Logger) Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &extContext{
		svc:    svc,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) DB() *sql.DB { return c.db }

func (c *extContext) Config() *config.Config { return c.cfg }

func (c *extContext) Logger() *slog.Logger { return c.logger }
