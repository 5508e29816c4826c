// serve.go implements "docver serve", the stdio MCP server.
//
// serve is storeless: the server opens its own service, and can start
// before any registry exists so a client can call docver_init.

package core

import (
	"fmt"
	"log/slog"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/internal/config"
	"github.com/jpl-au/docver/internal/mcp"
	"github.com/spf13/cobra"
)

const flagLogLevel = "log-level"

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

Use --db to serve a specific database:
  docver serve --db archive    # serve docver-archive.db

Diagnostics go to stderr at the configured log.level (default warn).
--log-level overrides it for this run. See 'docver guide mcp'.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	c.Flags().String(flagLogLevel, "", "Diagnostic log level: debug, info, warn, error")
	return c
}

func runServe(c *cobra.Command, _ []string) error {
	level, err := serveLevel(c)
	if err != nil {
		return err
	}
	return mcp.Serve(cmd.DB(), cmd.Dir(), level)
}

// serveLevel resolves the diagnostic level: -v, then --log-level, then
// config, then the default. An unreadable config falls back to the default.
func serveLevel(c *cobra.Command) (slog.Level, error) {
	if cmd.Verbose() {
		return slog.LevelDebug, nil
	}
	var cfg config.Config
	if v, _ := c.Flags().GetString(flagLogLevel); v != "" {
		if err := cfg.Set("log.level", v); err != nil {
			return 0, fmt.Errorf("serve --%s: %w", flagLogLevel, err)
		}
		return cfg.LogLevel(), nil
	}
	if loaded, err := config.Load(); err == nil {
		return loaded.LogLevel(), nil
	}
	return cfg.LogLevel(), nil
}
