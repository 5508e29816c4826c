// show.go implements the "docver show" command.

package document

import (
	"fmt"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/internal/format"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a document and its versions",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runShow,
	}
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	doc, err := e.svc.Get(c.Context(), id)
	if err == nil && doc == nil {
		err = store.ErrNotFound
	}

	log.Event("document:show", "read").
		Author(cmd.Author()).
		Document(id).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show %d: %w", id, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(doc.ToJSON())
	}
	return format.Document(cmd.Out(), *doc)
}
