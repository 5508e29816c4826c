// rename.go implements the "docver rename" command.
//
// Rename changes the document name and rewrites every version path in one
// transaction. --dry-run prints the path changes as a diff without writing;
// the diff is coloured when stdout is a terminal.

package document

import (
	"fmt"
	"os"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/diff"
	"github.com/jpl-au/docver/internal/format"
	"github.com/jpl-au/docver/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newRenameCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rename <id> <new-name>",
		Short: "Rename a document and rewrite its version paths",
		Long: `Rename a document. Every version path is rewritten so its folder and
filename follow the new name:

  docs/Report/Report_v2.docx  ->  docs/Final/Final_v2.docx

See 'docver guide rename' for the full rule.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runRename,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show path changes without writing")
	return c
}

func (e *Extension) runRename(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, err := parseID(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	name := args[1]
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	if dryRun {
		report, err := e.svc.PreviewRename(ctx, id, name)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("rename %d: %w", id, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(report.ToJSON())
		}
		colour := term.IsTerminal(int(os.Stdout.Fd()))
		fmt.Fprint(cmd.Out(), diff.Rename(report).Format(colour))
		for _, w := range report.Warnings {
			fmt.Fprintf(cmd.Out(), "warning: %v\n", w)
		}
		return nil
	}

	report, err := e.svc.Rename(ctx, id, name)

	l := log.Event("document:rename", "rename").
		Author(cmd.Author()).
		Document(id).
		Name(name)
	if report != nil {
		l.Detail("from", report.OldName).Detail("versions", len(report.Changes))
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rename %d to %q: %w", id, name, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(report.ToJSON())
	}
	fmt.Fprintf(cmd.Out(), "Renamed %s -> %s\n", report.OldName, report.NewName)
	return format.Changes(cmd.Out(), report)
}
