// Package document provides the document extension for registry operations.
// Registers commands: ls, show, create, add-version, rename, archive, check,
// stats.
//
// Each command file is separated to isolate its flag handling and output
// formatting. Commands print text by default and JSON with -o json.

package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/config"
	"github.com/jpl-au/docver/internal/format"
	"github.com/jpl-au/docver/internal/service"
	"github.com/jpl-au/docver/internal/store"
	"github.com/jpl-au/docver/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the document extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
)

// Name returns "document" - this extension handles the registry commands.
func (e *Extension) Name() string { return "document" }

// Init connects to the shared service for document operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the document and version commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newLsCmd(),
		e.newShowCmd(),
		e.newCreateCmd(),
		e.newAddVersionCmd(),
		e.newRenameCmd(),
		e.newArchiveCmd(),
		e.newCheckCmd(),
		e.newStatsCmd(),
	}
}

// MCPTools returns the tree view tool. The other document tools live in
// internal/mcp alongside the server.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Tool: mcp.NewTool("docver_tree",
			mcp.WithDescription("Show the version paths of all documents as a directory tree"),
			mcp.WithBoolean("active", mcp.Description("Only documents that are not archived")),
		),
		Handler: treeTool,
	}}
}

// treeTool renders format.Tree for MCP clients.
func treeTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var opts store.ListOptions
	if args, ok := req.Params.Arguments.(map[string]any); ok {
		opts.ActiveOnly, _ = args["active"].(bool)
	}

	docs, err := extCtx.Service().List(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	if err := format.Tree(&b, docs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

// HandleEvent re-checks a document after it is renamed and logs a warning
// for any version path that still does not match the new name. This
// happens when a path had no folder or the stem rule could not apply.
func (e *Extension) HandleEvent(ctx extension.Context, evt extension.Event) error {
	ev, ok := evt.(extension.DocumentRenameEvent)
	if !ok {
		return nil
	}

	// Event handlers don't receive the caller's context.Context. The rename
	// has committed, so a background context is fine for the follow-up read.
	doc, err := ctx.Service().Get(context.Background(), ev.ID)
	if err != nil || doc == nil {
		return err
	}
	for _, is := range store.CheckView(*doc) {
		ctx.Logger().Warn("version path does not follow document name",
			"document", is.DocumentID,
			"version", is.VersionID,
			"kind", is.Kind,
			"detail", is.Detail)
	}
	return nil
}

// parseID parses a document id argument.
func parseID(arg string) (int64, error) {
	id, err := validate.ParseID(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid document id %q: %w", arg, err)
	}
	return id, nil
}
