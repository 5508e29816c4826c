// Package core registers the commands that manage docver itself rather than
// documents: init, config, serve, guide, db, audit and version, plus the
// docver_db_list MCP tool.
package core

import (
	"github.com/jpl-au/docver/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension is the core extension.
type Extension struct{}

var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

func (e *Extension) Name() string { return "core" }

func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newDBCmd(),
		newAuditCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns docver_db_list. init, config and guide are served by
// internal/mcp directly because they must work before a store exists.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{dbListTool()}
}

// NoStoreCommands lists the core commands that run without an open store.
// serve opens its own, db only edits .gitignore and version reads build
// info. init, config and guide are bootstrap commands handled by cmd.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db", "version"}
}
