// audit.go implements "docver audit", which reads back the audit trail.
//
// Entries come from the machine-wide audit database and are limited to the
// current project unless --all is given. With a document id only operations
// on that document are shown.

package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/duration"
	"github.com/jpl-au/docver/internal/format"
	"github.com/jpl-au/docver/internal/log"
	"github.com/spf13/cobra"
)

const defaultAuditLimit = 20

func newAuditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "audit [id]",
		Short: "Show recent operations from the audit log",
		Long: `Show who did what, newest first. Every CLI command and MCP tool call is
recorded with its author, target document and outcome.

Examples:
  docver audit              # last 20 operations in this project
  docver audit 3            # operations on document 3
  docver audit --failed     # only operations that failed
  docver audit --since 7d --limit 0
  docver audit --all        # every project on this machine`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAudit,
	}
	c.Flags().Bool(extension.FlagAll, false, "Include every project")
	c.Flags().Bool(extension.FlagFailed, false, "Only failed operations")
	c.Flags().String(extension.FlagSince, "", "Only entries newer than this age (7d, 4w, 3m)")
	c.Flags().Int(extension.FlagLimit, defaultAuditLimit, "Maximum entries to show (0 for all)")
	return c
}

func runAudit(c *cobra.Command, args []string) error {
	var f log.Filter
	f.Failed, _ = c.Flags().GetBool(extension.FlagFailed)
	f.Limit, _ = c.Flags().GetInt(extension.FlagLimit)
	if all, _ := c.Flags().GetBool(extension.FlagAll); !all {
		f.Project = log.Project()
	}
	if since, _ := c.Flags().GetString(extension.FlagSince); since != "" {
		age, err := duration.Parse(since)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("audit --%s: %w", extension.FlagSince, err))
		}
		f.Since = time.Now().Add(-age)
	}
	if f.Limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("audit --%s: must not be negative", extension.FlagLimit))
	}
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return cmd.PrintJSONError(fmt.Errorf("invalid document id %q", args[0]))
		}
		f.Document = id
	}

	entries, err := log.Query(c.Context(), f)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("audit: %w", err))
	}
	if cmd.JSON() {
		if entries == nil {
			entries = []log.Entry{}
		}
		return cmd.PrintJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.Out(), "No audit entries")
		return nil
	}
	return format.Audit(cmd.Out(), entries)
}
