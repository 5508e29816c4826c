// tools_util.go provides helpers for extracting tool arguments.
//
// Optional arguments are extracted permissively: a missing or mistyped value
// yields the caller's default instead of an error, since clients often omit
// optional arguments or send them in a loose form. Required arguments use
// RequireString or getID and fail with a tool error result.

package mcp

import (
	"strconv"

	"github.com/jpl-au/docver/internal/store"
	"github.com/jpl-au/docver/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString returns a string argument, or def if it is missing.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns a boolean argument, or def if it is missing or not a
// JSON boolean. mcp-go has no RequireBool, so the raw map is read directly.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getID extracts a document id from the MCP request arguments.
//
// JSON numbers decode as float64, but clients sometimes quote ids, so a
// numeric string is accepted too. Unlike the other helpers a missing or
// malformed id is an error: every tool that takes an id needs one.
func getID(req mcp.CallToolRequest, name string) (int64, error) {
	args, _ := req.Params.Arguments.(map[string]any)
	switch v := args[name].(type) {
	case float64:
		return validate.ParseID(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		return validate.ParseID(v)
	default:
		return validate.ParseID("")
	}
}

// jsonResult serialises v as indented JSON in a text result. Marshal
// failures become tool error results so every failure reaches the client
// the same way.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
