/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and the process entry point.
//
// Store-backed commands get the document service lazily in
// PersistentPreRunE. Commands listed in noStoreCommands (init, guide,
// config, and those extensions declare storeless) run without one.
//
// Exit status: 0 on success, 1 on failure, or the code carried by an error
// implementing ExitCoder (check uses 2 when it finds issues).

package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/docver/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docver",
	Short: "Document and version registry",
	Long: `Tracks documents and the file paths of their versions in a SQLite database.
Renaming a document rewrites every version path to the new name in one transaction.`,
	Run: func(c *cobra.Command, _ []string) {
		_ = c.Help()
	},
	PersistentPreRunE: prepare,
}

// prepare checks global flags, resolves the author and opens the store
// unless the command runs without one.
func prepare(c *cobra.Command, _ []string) error {
	if output != "" && !slices.Contains(validOutputFormats, output) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
	}
	if author == "" {
		author = detectAuthor()
	}
	if noStoreCommands[topLevel(c).Name()] {
		return nil
	}

	err := initExtensions()
	if err == nil {
		return nil
	}
	err = fmt.Errorf("initialise extensions: %w", err)
	if JSON() {
		// The command never runs, so report here and keep cobra quiet.
		c.SilenceErrors, c.SilenceUsage = true, true
		_ = PrintJSON(jsonError{Error: err.Error(), Kind: errorKind(err)})
	}
	return err
}

// topLevel returns the direct child of root that c belongs to, so
// "docver config --unset x" resolves to config.
func topLevel(c *cobra.Command) *cobra.Command {
	for c.HasParent() && c.Parent().HasParent() {
		c = c.Parent()
	}
	return c
}

// Execute runs docver. The audit log is opened first and is optional: a
// failure to open it is reported and the command runs anyway. The document
// service, if a command opened one, is closed before exit.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	if extService != nil {
		if cerr := extService.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", cerr)
		}
	}
	if err != nil {
		log.Close()
		os.Exit(exitCode(err))
	}
}

// ExitCoder is implemented by errors that need a specific exit status.
type ExitCoder interface {
	ExitCode() int
}

func exitCode(err error) int {
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}
