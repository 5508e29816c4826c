// db.go implements "docver db" and the docver_db_list MCP tool.
//
// A project can hold several registries side by side (docver.db,
// docver-archive.db, ...). Each is shared (committed) or local (listed in
// .docver/.gitignore). The command only edits .gitignore and never opens a
// database, so it is storeless.

package core

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage databases",
		Long: `List databases or change their local/shared status.

  docver db                    # list all databases
  docver db --local            # mark default database as local
  docver db scratch --local    # mark scratch database as local
  docver db scratch --share    # mark as shared
  docver db --dir /path        # list databases in external directory

Local databases are not committed. Shared databases are.
If no name is given with --local or --share, operates on the default database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	// repo works on the .docver directory itself; empty means discover it.
	dir := cmd.Dir()
	dvDir := ""
	if dir != "" {
		dvDir = filepath.Join(dir, repo.Dir)
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	}

	action := "status"
	switch {
	case local:
		action = "local"
	case share:
		action = "share"
	case len(args) == 0:
		action = "list"
	}

	var err error
	if err = repo.CheckDBName(name); err == nil {
		switch action {
		case "list":
			err = listDBs(dvDir)
		case "local":
			err = repo.IgnoreDB(name, dvDir)
		case "share":
			err = repo.UnignoreDB(name, dvDir)
		default:
			err = dbStatus(name, dvDir)
		}
	}

	log.Event("core:db", action).
		Author(cmd.Author()).
		Detail("db", name).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db %s: %w", action, err))
	}
	if action == "local" || action == "share" {
		return printDBStatus(name, local, true)
	}
	return nil
}

func dbStatus(name, dvDir string) error {
	ignored, err := repo.IsIgnored(name, dvDir)
	if err != nil {
		return err
	}
	return printDBStatus(name, ignored, false)
}

// printDBStatus reports one database; changed selects the wording used
// after --local or --share.
func printDBStatus(name string, local, changed bool) error {
	file := repo.DBFileName(name)
	switch {
	case cmd.JSON():
		return cmd.PrintJSON(dbEntry{Name: name, File: file, Local: local})
	case changed:
		fmt.Fprintf(cmd.Out(), "%s marked as %s\n", file, scopeLabel(local))
	default:
		fmt.Fprintf(cmd.Out(), "%s: %s\n", file, scopeLabel(local))
	}
	return nil
}

func scopeLabel(local bool) string {
	if local {
		return "local"
	}
	return "shared"
}

// dbEntry is the JSON form of a database listing.
type dbEntry struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Local bool   `json:"local"`
}

// listDBs displays all databases in the target directory with their status.
// Each database shows as "shared" (committed) or "local" (gitignored).
func listDBs(dir string) error {
	dbs, err := repo.ListDBs(dir)
	if err != nil {
		return fmt.Errorf("list databases: %w", err)
	}

	if cmd.JSON() {
		out := make([]dbEntry, len(dbs))
		for i, d := range dbs {
			out[i] = dbEntry{Name: d.Name, File: d.File, Local: d.Local}
		}
		return cmd.PrintJSON(out)
	}

	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
		return nil
	}

	for _, db := range dbs {
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, scopeLabel(db.Local))
	}
	return nil
}

// dbListTool lists the databases beside the one the server has open.
func dbListTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("docver_db_list",
			mcp.WithDescription("List docver databases in the project and whether each is local (gitignored) or shared"),
		),
		Handler: func(_ context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			dbs, err := repo.ListDBs(filepath.Dir(extCtx.Service().DBPath()))

			log.Event("mcp:db_list", "list").Author("mcp").Detail("count", len(dbs)).Write(err)

			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			out := make([]dbEntry, len(dbs))
			for i, d := range dbs {
				out[i] = dbEntry{Name: d.Name, File: d.File, Local: d.Local}
			}
			b, err := json.Marshal(out)
			if err != nil {
				return nil, fmt.Errorf("marshal databases: %w", err)
			}
			return mcp.NewToolResultText(string(b)), nil
		},
	}
}
