// create.go implements the "docver create" command.
//
// The document and its first version are inserted in one transaction, so a
// failed create leaves nothing behind.

package document

import (
	"fmt"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/path"
	"github.com/jpl-au/docver/internal/validate"
	"github.com/spf13/cobra"
)

// createResult is the JSON output of create.
type createResult struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FilePath string `json:"file_path"`
}

func (e *Extension) newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> <date> <file-path>",
		Short: "Create a document with its first version",
		Long: `Create a document and record its first version.

  docver create "Report" 2024-01-01 docs/Report/Report.docx

Dates are YYYY-MM-DD or RFC 3339. Backslashes in the path are converted to '/'.`,
		Args: cobra.ExactArgs(3),
		RunE: e.runCreate,
	}
}

func (e *Extension) runCreate(c *cobra.Command, args []string) error {
	name, filePath := args[0], args[2]

	created, err := validate.Date(args[1])
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("create %q: %w", name, err))
	}

	// Report the path as it is stored. An invalid path is left for the
	// service to reject.
	if p, err := path.Normalise(filePath); err == nil {
		filePath = p
	}

	id, err := e.svc.Create(c.Context(), name, created, filePath)

	log.Event("document:create", "create").
		Author(cmd.Author()).
		Document(id).
		Name(name).
		Path(filePath).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("create %q: %w", name, err))
	}

	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Created document %d: %s\n", id, name)
	}
	return cmd.PrintJSON(createResult{ID: id, Name: name, FilePath: filePath})
}
