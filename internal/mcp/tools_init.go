// tools_init.go implements docver_init, which creates the registry the
// server then attaches to. It is the one store tool usable before a store
// exists.

package mcp

import (
	"context"

	"github.com/jpl-au/docver/internal/document"
	"github.com/jpl-au/docver/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initResult is the JSON result of docver_init.
type initResult struct {
	Database string `json:"database"`
	Local    bool   `json:"local"`
}

// initStore handles docver_init tool calls.
func (h *handlers) initStore(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("store already initialised at " + h.svc.DBPath()), nil
	}

	local := getBool(req, "local", false)
	err := document.Init(false, h.db, local, h.dir)

	log.Event("mcp:init", "init").
		Author("mcp").
		Detail("db", h.db).
		Detail("dir", h.dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := document.New(h.db, h.dir, document.WithLogger(h.logger))
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open store: " + err.Error()), nil
	}
	h.attach(svc)

	h.logger.Info("store initialised", "path", svc.DBPath(), "local", local)
	return jsonResult(initResult{Database: svc.DBPath(), Local: local})
}
