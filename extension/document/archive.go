// archive.go implements the "docver archive" command.
//
// Archiving sets the archived date and keeps every version. Archiving an
// archived document refreshes the date.

package document

import (
	"fmt"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/internal/log"
	"github.com/spf13/cobra"
)

// archiveResult is the JSON output of archive.
type archiveResult struct {
	ID       int64 `json:"id"`
	Archived bool  `json:"archived"`
}

func (e *Extension) newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Mark a document archived",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runArchive,
	}
}

func (e *Extension) runArchive(c *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	err = e.svc.Archive(c.Context(), id)

	log.Event("document:archive", "archive").
		Author(cmd.Author()).
		Document(id).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("archive %d: %w", id, err))
	}

	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Archived document %d\n", id)
	}
	return cmd.PrintJSON(archiveResult{ID: id, Archived: true})
}
