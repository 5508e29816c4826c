// check.go implements the "docver check" and "docver stats" commands.
//
// Check reports documents without versions and versions whose folder does
// not match the document name. It exits non-zero when issues are found so
// scripts can gate on it.

package document

import (
	"errors"
	"fmt"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/internal/format"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/store"
	"github.com/spf13/cobra"
)

// ErrIssuesFound is returned by check when the registry is inconsistent.
var ErrIssuesFound = errors.New("consistency issues found")

// issuesError reports how many issues check found. It exits with status 2
// so scripts can tell issues apart from a failed run.
type issuesError struct{ n int }

func (e issuesError) Error() string { return fmt.Sprintf("%v: %d", ErrIssuesFound, e.n) }
func (e issuesError) Unwrap() error { return ErrIssuesFound }
func (e issuesError) ExitCode() int { return 2 }

var _ cmd.ExitCoder = issuesError{}

func (e *Extension) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report documents whose version paths do not match their name",
		Args:  cobra.NoArgs,
		RunE:  e.runCheck,
	}
}

func (e *Extension) runCheck(c *cobra.Command, _ []string) error {
	issues, err := e.svc.Check(c.Context())

	log.Event("document:check", "check").
		Author(cmd.Author()).
		Detail("issues", len(issues)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("check: %w", err))
	}

	if cmd.JSON() {
		if issues == nil {
			issues = []store.Issue{}
		}
		return cmd.PrintJSON(issues)
	}

	if len(issues) == 0 {
		fmt.Fprintln(cmd.Out(), "No issues found")
		return nil
	}
	if err := format.Issues(cmd.Out(), issues); err != nil {
		return err
	}
	c.SilenceUsage = true
	return issuesError{n: len(issues)}
}

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show document and version counts",
		Args:  cobra.NoArgs,
		RunE:  e.runStats,
	}
}

func (e *Extension) runStats(c *cobra.Command, _ []string) error {
	st, err := e.svc.Stats(c.Context())

	log.Event("document:stats", "stats").Author(cmd.Author()).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
	}

	j := st.ToJSON()
	if cmd.JSON() {
		return cmd.PrintJSON(j)
	}
	fmt.Fprintf(cmd.Out(), "Documents: %d (%d active, %d archived)\n", j.Documents, j.Active, j.Archived)
	fmt.Fprintf(cmd.Out(), "Versions:  %d\n", j.Versions)
	if j.Versions > 0 {
		fmt.Fprintf(cmd.Out(), "Oldest:    %s\n", j.OldestVersion)
		fmt.Fprintf(cmd.Out(), "Newest:    %s\n", j.NewestVersion)
	}
	return nil
}
