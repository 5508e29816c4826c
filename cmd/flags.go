/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go holds the global flags and the output helpers every command
// uses.
//
// Extensions read flags through the accessors here, never through cobra.
// With -o json a command prints exactly one JSON value on stdout: its
// result, or {"error": ..., "kind": ...} on failure.

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jpl-au/docver/internal/config"
	"github.com/jpl-au/docver/internal/store"
	"github.com/jpl-au/docver/internal/validate"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output  string
	author  string
	force   bool
	db      string
	dir     string
	verbose bool
)

// Environment fallbacks for the flags of the same name.
const (
	envDB     = "DOCVER_DB"
	envDir    = "DOCVER_DIR"
	envAuthor = "DOCVER_AUTHOR"
)

// out is the output writer for commands. Tests can replace it.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// Output returns the output format flag value.
func Output() string { return output }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// Author returns who is recorded in the audit log: --author, then
// DOCVER_AUTHOR, then author.name or author.email from config.
func Author() string { return author }

// Force returns the force flag value.
func Force() bool { return force }

// DB returns the database name: --db, then DOCVER_DB, else the default.
func DB() string { return flagOrEnv(db, envDB) }

// Dir returns the explicit project directory: --dir, then DOCVER_DIR, else
// empty for discovery.
func Dir() string { return flagOrEnv(dir, envDir) }

// Verbose reports whether -v was given. Diagnostics are then logged at
// debug level regardless of log.level.
func Verbose() bool { return verbose }

// Logger returns the diagnostic logger for commands: text on stderr at the
// configured level, or debug with -v.
func Logger(cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func flagOrEnv(flag, env string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(env)
}

// PrintJSON writes v as one line of JSON. It does nothing unless -o json
// was given, so commands can call it unconditionally after text output.
func PrintJSON(v any) error {
	if !JSON() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// jsonError is the JSON form of a failed command.
type jsonError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// errorKind classifies err for JSON consumers.
func errorKind(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case errors.Is(err, validate.ErrInvalid):
		return "invalid"
	default:
		return "error"
	}
}

// PrintJSONError prints err as JSON when -o json was given and returns nil
// so cobra does not print it again. Otherwise err is returned unchanged.
func PrintJSONError(err error) error {
	if !JSON() || err == nil {
		return err
	}
	// Printing is best effort; there is nowhere left to report a failure.
	_ = PrintJSON(jsonError{Error: err.Error(), Kind: errorKind(err)})
	return nil
}

// detectAuthor resolves the default audit author when --author is unset.
func detectAuthor() string {
	if v := os.Getenv(envAuthor); v != "" {
		return v
	}
	cfg, err := config.Load()
	if err != nil {
		return ""
	}
	if cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return cfg.Author.Email
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Author recorded in the audit log (default $DOCVER_AUTHOR or author.name)")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Skip confirmations")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Database name, e.g. archive for docver-archive.db (default $DOCVER_DB)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Project directory holding .docver, skips discovery (default $DOCVER_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics at debug level to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
