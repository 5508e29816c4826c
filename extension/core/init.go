// init.go implements "docver init", which creates .docver/ and an empty
// registry database.
//
// init does not write config; "docver config" owns that. --local lists the
// new database in .docver/.gitignore so it is never committed. --force
// replaces an existing database, and the output says how many documents
// were discarded.

package core

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/document"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/repo"
	"github.com/jpl-au/docver/internal/store"
	"github.com/spf13/cobra"
)

// initResult is the JSON output of init.
type initResult struct {
	Database  string `json:"database"`
	Local     bool   `json:"local"`
	Discarded int64  `json:"discarded,omitempty"`
}

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new docver registry",
		Long: `Creates a .docver/docver.db database in the current directory.

Use --db to create additional databases:
  docver init --db archive    # creates .docver/docver-archive.db

Use --dir to create in a different directory:
  docver init --dir /path/to/project    # creates /path/to/project/.docver/docver.db

Use --local to exclude from git:
  docver init --db scratch --local    # creates docver-scratch.db, not committed

Use --force to replace an existing database. Its documents are discarded.

Note: init does not create config. Use "docver config" to set up configuration.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .gitignore, which means nothing for a
	// database created elsewhere with --dir.
	if local && dir != "" {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	var discarded int64
	if cmd.Force() {
		discarded = countExisting(c.Context(), db, dir)
	}

	err := document.Init(cmd.Force(), db, local, dir)
	if err == nil {
		log.SetProject(filepath.Join(cmp.Or(dir, "."), repo.Dir))
	}

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Detail("discarded", discarded).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := filepath.Join(dir, repo.Dir, repo.DBFileName(db))
	if cmd.JSON() {
		return cmd.PrintJSON(initResult{Database: loc, Local: local, Discarded: discarded})
	}
	fmt.Fprintf(cmd.Out(), "Initialised docver registry in %s\n", loc)
	if discarded > 0 {
		fmt.Fprintf(cmd.Out(), "Discarded %d existing documents\n", discarded)
	}
	return nil
}

// countExisting returns the document count of the database init is about to
// replace, or 0 if there is none or it cannot be read.
func countExisting(ctx context.Context, db, dir string) int64 {
	if dir == "" {
		dir = "."
	}
	path, err := repo.Locate(db, dir)
	if err != nil {
		return 0
	}
	s, err := store.Open(path)
	if err != nil {
		return 0
	}
	defer s.Close()
	st, err := s.Stats(ctx)
	if err != nil {
		return 0
	}
	return st.Documents
}
