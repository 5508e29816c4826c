// version.go implements the "docver add-version" command.

package document

import (
	"fmt"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/path"
	"github.com/jpl-au/docver/internal/validate"
	"github.com/spf13/cobra"
)

// addVersionResult is the JSON output of add-version.
type addVersionResult struct {
	DocumentID int64  `json:"document_id"`
	VersionID  int64  `json:"version_id"`
	FilePath   string `json:"file_path"`
}

func (e *Extension) newAddVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-version <id> <date> <file-path>",
		Short: "Append a version to a document",
		Long: `Append a version to an existing document.

  docver add-version 1 2024-02-01 docs/Report/Report_v2.docx

Archived documents accept new versions.`,
		Args: cobra.ExactArgs(3),
		RunE: e.runAddVersion,
	}
}

func (e *Extension) runAddVersion(c *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	filePath := args[2]

	created, err := validate.Date(args[1])
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add-version %d: %w", id, err))
	}

	// Report the path as it is stored. An invalid path is left for the
	// service to reject.
	if p, err := path.Normalise(filePath); err == nil {
		filePath = p
	}

	vid, err := e.svc.AddVersion(c.Context(), id, created, filePath)

	log.Event("document:add-version", "add_version").
		Author(cmd.Author()).
		Document(id).
		Path(filePath).
		Result(vid).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add-version %d: %w", id, err))
	}

	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Added version %d to document %d\n", vid, id)
	}
	return cmd.PrintJSON(addVersionResult{DocumentID: id, VersionID: vid, FilePath: filePath})
}
