// tools_documents.go implements MCP tools for document operations.
//
// These tools mirror the CLI commands (ls, show, create, add-version, rename,
// archive, check, stats) but return structured JSON for the client.
//
// Mutating tools require an author argument so every change in the audit log
// is attributable to a client. Read tools default the author to "mcp".
// Failures are returned as tool error results rather than Go errors so the
// client receives a message it can act on.

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/docver/internal/diff"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/rewrite"
	"github.com/jpl-au/docver/internal/store"
	"github.com/jpl-au/docver/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolError converts an operation error into a tool error result.
func toolError(id int64, err error) *mcp.CallToolResult {
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("document %d not found", id))
	}
	return mcp.NewToolResultError(err.Error())
}

// listDocuments handles docver_list tool calls.
func (h *handlers) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	opts := store.ListOptions{
		ActiveOnly:   getBool(req, "active", false),
		ArchivedOnly: getBool(req, "archived", false),
	}
	if opts.ActiveOnly && opts.ArchivedOnly {
		return mcp.NewToolResultError("active and archived are mutually exclusive"), nil
	}

	var err error
	l := log.Event("mcp:list", "list").Author(getString(req, "author", "mcp")).
		Detail("active", opts.ActiveOnly).Detail("archived", opts.ArchivedOnly)
	defer func() { l.Write(err) }()

	docs, err := h.svc.List(ctx, opts)
	if err != nil {
		return toolError(0, err), nil
	}
	l.Detail("count", len(docs))

	out := make([]store.DocumentJSON, len(docs))
	for i := range docs {
		out[i] = docs[i].ToJSON()
	}
	return jsonResult(out)
}

// getDocument handles docver_get tool calls.
func (h *handlers) getDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	id, err := getID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l := log.Event("mcp:get", "read").Author(getString(req, "author", "mcp")).Document(id)
	defer func() { l.Write(err) }()

	doc, err := h.svc.Get(ctx, id)
	if err != nil {
		return toolError(id, err), nil
	}
	if doc == nil {
		err = store.ErrNotFound
		return toolError(id, err), nil
	}
	return jsonResult(doc.ToJSON())
}

// createDocument handles docver_create tool calls.
func (h *handlers) createDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil
	}
	title := getString(req, "title", "")
	filePath := getString(req, "file_path", "")

	created, err := validate.Date(getString(req, "date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var id int64
	l := log.Event("mcp:create", "create").Author(author).Name(title).Path(filePath)
	defer func() { l.Document(id).Write(err) }()

	id, err = h.svc.Create(ctx, title, created, filePath)
	if err != nil {
		return toolError(0, err), nil
	}

	doc, err := h.svc.Get(ctx, id)
	if err != nil {
		return toolError(id, err), nil
	}
	return jsonResult(doc.ToJSON())
}

// addVersion handles docver_add_version tool calls.
func (h *handlers) addVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil
	}
	id, err := getID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filePath := getString(req, "file_path", "")

	created, err := validate.Date(getString(req, "date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var vid int64
	l := log.Event("mcp:add_version", "add_version").Author(author).Document(id).Path(filePath)
	defer func() { l.Result(vid).Write(err) }()

	vid, err = h.svc.AddVersion(ctx, id, created, filePath)
	if err != nil {
		return toolError(id, err), nil
	}

	doc, err := h.svc.Get(ctx, id)
	if err != nil {
		return toolError(id, err), nil
	}
	return jsonResult(doc.ToJSON())
}

// renameResult is the docver_rename response: the cascade report plus a
// path diff when dry_run is set.
type renameResult struct {
	rewrite.ReportJSON
	DryRun bool   `json:"dry_run,omitempty"`
	Diff   string `json:"diff,omitempty"`
}

// renameDocument handles docver_rename tool calls.
func (h *handlers) renameDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil
	}
	id, err := getID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := getString(req, "name", "")
	dryRun := getBool(req, "dry_run", false)

	if dryRun {
		report, err := h.svc.PreviewRename(ctx, id, name)
		if err != nil {
			return toolError(id, err), nil
		}
		return jsonResult(renameResult{
			ReportJSON: report.ToJSON(),
			DryRun:     true,
			Diff:       diff.Rename(report).Format(false),
		})
	}

	l := log.Event("mcp:rename", "rename").Author(author).Document(id).Name(name)
	defer func() { l.Write(err) }()

	report, err := h.svc.Rename(ctx, id, name)
	if err != nil {
		return toolError(id, err), nil
	}
	l.Detail("from", report.OldName).Detail("versions", len(report.Changes))

	return jsonResult(renameResult{ReportJSON: report.ToJSON()})
}

// archiveDocument handles docver_archive tool calls.
func (h *handlers) archiveDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil
	}
	id, err := getID(req, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l := log.Event("mcp:archive", "archive").Author(author).Document(id)
	defer func() { l.Write(err) }()

	if err = h.svc.Archive(ctx, id); err != nil {
		return toolError(id, err), nil
	}

	doc, err := h.svc.Get(ctx, id)
	if err != nil {
		return toolError(id, err), nil
	}
	return jsonResult(doc.ToJSON())
}

// checkDocuments handles docver_check tool calls.
func (h *handlers) checkDocuments(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	issues, err := h.svc.Check(ctx)

	log.Event("mcp:check", "check").Author("mcp").Detail("issues", len(issues)).Write(err)

	if err != nil {
		return toolError(0, err), nil
	}
	if issues == nil {
		issues = []store.Issue{}
	}
	return jsonResult(issues)
}

// stats handles docver_stats tool calls.
func (h *handlers) stats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	st, err := h.svc.Stats(ctx)
	if err != nil {
		return toolError(0, err), nil
	}
	return jsonResult(st.ToJSON())
}
