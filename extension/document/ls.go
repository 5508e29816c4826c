// ls.go implements the "docver ls" command for listing documents.
//
// By default every document is listed, archived ones included and marked.
// --active and --archived narrow the list. -l shows version counts and the
// latest path, -t shows all version paths as a tree. --stale keeps only
// documents whose newest version is older than the given age.

package document

import (
	"fmt"
	"time"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/duration"
	"github.com/jpl-au/docver/internal/format"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List documents",
		Long:  `List all documents ordered by id, each with its versions.`,
		Args:  cobra.NoArgs,
		RunE:  e.runLs,
	}
	c.Flags().Bool(extension.FlagActive, false, "Only documents that are not archived")
	c.Flags().Bool(extension.FlagArchived, false, "Only archived documents")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with versions and latest path")
	c.Flags().BoolP(extension.FlagTree, "t", false, "Display version paths as a tree")
	c.Flags().String(extension.FlagStale, "", "Only documents with no version newer than this age (7d, 4w, 3m)")
	c.MarkFlagsMutuallyExclusive(extension.FlagActive, extension.FlagArchived)
	c.MarkFlagsMutuallyExclusive(extension.FlagLong, extension.FlagTree)
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	var opts store.ListOptions
	opts.ActiveOnly, _ = c.Flags().GetBool(extension.FlagActive)
	opts.ArchivedOnly, _ = c.Flags().GetBool(extension.FlagArchived)
	long, _ := c.Flags().GetBool(extension.FlagLong)
	tree, _ := c.Flags().GetBool(extension.FlagTree)
	stale, _ := c.Flags().GetString(extension.FlagStale)

	var age time.Duration
	if stale != "" {
		d, err := duration.Parse(stale)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("ls --%s: %w", extension.FlagStale, err))
		}
		age = d
	}

	docs, err := e.svc.List(ctx, opts)
	if err == nil && stale != "" {
		docs = olderThan(docs, time.Now().Add(-age))
	}

	log.Event("document:ls", "list").
		Author(cmd.Author()).
		Detail("active", opts.ActiveOnly).
		Detail("archived", opts.ArchivedOnly).
		Detail("stale", stale).
		Detail("count", len(docs)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
	}

	if cmd.JSON() {
		out := make([]store.DocumentJSON, len(docs))
		for i := range docs {
			out[i] = docs[i].ToJSON()
		}
		return cmd.PrintJSON(out)
	}

	switch {
	case long:
		return format.Long(cmd.Out(), docs)
	case tree:
		return format.Tree(cmd.Out(), docs)
	default:
		return format.List(cmd.Out(), docs)
	}
}

// olderThan keeps documents whose newest version was created before cutoff.
// Documents without versions are kept: they have nothing newer.
func olderThan(docs []store.DocumentView, cutoff time.Time) []store.DocumentView {
	var out []store.DocumentView
	for _, d := range docs {
		if v, ok := d.Latest(); !ok || v.CreatedAt < cutoff.Unix() {
			out = append(out, d)
		}
	}
	return out
}
