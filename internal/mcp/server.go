// Package mcp implements the Model Context Protocol server, exposing docver
// operations to LLM clients. Assistants can list, create, rename and archive
// documents through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/config"
	"github.com/jpl-au/docver/internal/document"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/repo"
	"github.com/jpl-au/docver/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ErrNotInitialised is returned by tools when the store has not been initialised.
// The client should call docver_init to create a store before using other tools.
const ErrNotInitialised = "store not initialised - call docver_init first"

// Serve starts the MCP server over stdio.
// db names the database (empty for default); dir, if set, skips discovery.
//
// The server starts successfully even if no store exists. Clients can call
// docver_init to create one; tools that need a store return
// ErrNotInitialised until then.
//
// Diagnostics go to stderr at level; stdout carries JSON-RPC only.
func Serve(db, dir string, level slog.Leveler) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	h := &handlers{db: db, dir: dir, logger: logger}

	// Try to open existing store; nil service is OK (uninitialised mode)
	svc, err := document.New(db, dir, document.WithLogger(logger))
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open store", "error", err)
		return err
	}
	// Closes whichever service is attached at exit, including one opened
	// later by docver_init.
	defer func() {
		if h.svc != nil {
			h.svc.Close()
		}
	}()
	if err == nil {
		h.attach(svc)
	} else {
		slog.Info("docver not initialised, starting in uninitialised mode - call docver_init to create store")
	}

	s := newServer(h)

	slog.Info("docver MCP server ready", "version", version.Short(), "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server with all resources and tools registered.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"docver",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// handlers provides MCP request handlers with access to the document store.
// The svc field may be nil if the store has not been initialised.
type handlers struct {
	db     string            // database name for init
	dir    string            // explicit project directory, empty for discovery
	svc    *document.Service // nil if not initialised
	extCtx extension.Context // nil until svc is set
	logger *slog.Logger
}

// attach sets the service and builds the extension context so extension
// tools and event handlers work inside the server process.
func (h *handlers) attach(svc *document.Service) {
	h.svc = svc
	log.SetProject(svc.Dir())

	cfg, err := config.Load()
	if err != nil {
		h.logger.Warn("config unavailable, using defaults", "err", err)
		cfg = &config.Config{}
	}
	h.extCtx = extension.NewContext(svc, svc.DB(), cfg, h.logger)
	svc.SetExtensionContext(h.extCtx)

	for _, ext := range extension.All() {
		if init, ok := ext.(extension.Initializable); ok {
			if err := init.Init(h.extCtx); err != nil {
				h.logger.Warn("extension init failed", "ext", ext.Name(), "err", err)
			}
		}
	}
}

// requireInit returns an error result if the store is not initialised.
// Tools that require a store should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerResources adds URI-based resource access for direct document reading.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"docver://documents/{id}",
			"Document",
			mcp.WithTemplateDescription("Read a document and its versions by id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readDocument,
	)
}

// registerTools exposes docver operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without existing store
	s.AddTool(
		mcp.NewTool("docver_init",
			mcp.WithDescription("Initialise a new docver registry. Call this first if other tools return 'store not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, database is gitignored (not committed to version control)")),
		),
		h.initStore,
	)

	s.AddTool(
		mcp.NewTool("docver_list",
			mcp.WithDescription("List documents with their versions"),
			mcp.WithBoolean("active", mcp.Description("Only documents that are not archived")),
			mcp.WithBoolean("archived", mcp.Description("Only archived documents")),
			mcp.WithString("author", mcp.Description("Caller identity for the audit log")),
		),
		h.listDocuments,
	)

	s.AddTool(
		mcp.NewTool("docver_get",
			mcp.WithDescription("Get one document and its versions"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithString("author", mcp.Description("Caller identity for the audit log")),
		),
		h.getDocument,
	)

	s.AddTool(
		mcp.NewTool("docver_create",
			mcp.WithDescription("Create a document with its first version"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Document name")),
			mcp.WithString("date", mcp.Required(), mcp.Description("Created date of the first version (YYYY-MM-DD or RFC 3339)")),
			mcp.WithString("file_path", mcp.Required(), mcp.Description("File path of the first version")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution for the audit log")),
		),
		h.createDocument,
	)

	s.AddTool(
		mcp.NewTool("docver_add_version",
			mcp.WithDescription("Append a version to a document"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithString("date", mcp.Required(), mcp.Description("Created date of the version (YYYY-MM-DD or RFC 3339)")),
			mcp.WithString("file_path", mcp.Required(), mcp.Description("File path of the version")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution for the audit log")),
		),
		h.addVersion,
	)

	s.AddTool(
		mcp.NewTool("docver_rename",
			mcp.WithDescription("Rename a document and rewrite every version path to the new name"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithString("name", mcp.Required(), mcp.Description("New document name")),
			mcp.WithBoolean("dry_run", mcp.Description("Report the path changes without writing")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution for the audit log")),
		),
		h.renameDocument,
	)

	s.AddTool(
		mcp.NewTool("docver_archive",
			mcp.WithDescription("Mark a document archived. Versions are kept."),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution for the audit log")),
		),
		h.archiveDocument,
	)

	s.AddTool(
		mcp.NewTool("docver_check",
			mcp.WithDescription("Report documents without versions and version paths that do not match the document name"),
		),
		h.checkDocuments,
	)

	s.AddTool(
		mcp.NewTool("docver_stats",
			mcp.WithDescription("Document and version counts"),
		),
		h.stats,
	)

	s.AddTool(
		mcp.NewTool("docver_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (author.name, limits.max_name, log.level, ...) or empty for all")),
			mcp.WithString("scope", mcp.Description("local or global; empty reads the file in effect")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("docver_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (author.name, limits.max_name, log.level, ...)")),
			mcp.WithString("value", mcp.Description("Value to set")),
			mcp.WithBoolean("unset", mcp.Description("Clear the key so its default applies")),
			mcp.WithString("scope", mcp.Description("local or global; empty writes the file in effect")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("docver_guide",
			mcp.WithDescription("Get help/guide content for docver"),
			mcp.WithString("topic", mcp.Description("Guide topic (rename, config, mcp), \"list\" for all topics, or empty for the index")),
		),
		h.getGuide,
	)
}

// coreTools names the tools registered by registerTools. Extensions cannot
// replace them.
var coreTools = []string{
	"docver_init", "docver_list", "docver_get", "docver_create",
	"docver_add_version", "docver_rename", "docver_archive", "docver_check",
	"docver_stats", "docver_config_get", "docver_config_set", "docver_guide",
}

// registerExtensionTools adds the tools declared by registered extensions.
// Handlers receive the extension context once the store is initialised.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	tools, skipped := extension.Tools(coreTools)
	for _, name := range skipped {
		h.logger.Warn("extension tool skipped", "tool", name)
	}
	for _, t := range tools {
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if result := h.requireInit(); result != nil {
				return result, nil
			}
			return t.Handler(ctx, h.extCtx, req)
		})
	}
}

// readDocument handles docver://documents/{id} resource requests.
func (h *handlers) readDocument(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readDocumentResource(ctx, req.Params.URI)
}
