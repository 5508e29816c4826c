// mcp.go defines how extensions contribute MCP tools.
//
// Not every extension has tools; the core server tools live in
// internal/mcp. A handler receives the request context for cancellation and
// the extension Context for service access.

package extension

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolPrefix is the name prefix shared by every docver MCP tool.
const ToolPrefix = "docver_"

// MCPTool pairs a tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler handles an extension tool call.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Tools collects the MCP tools of all extensions in registration order.
// Tools without the docver_ prefix, or whose name is in reserved or was
// already taken by an earlier extension, are skipped and returned by name in
// skipped.
func Tools(reserved []string) (tools []MCPTool, skipped []string) {
	seen := make(map[string]bool, len(reserved))
	for _, name := range reserved {
		seen[name] = true
	}
	for _, ext := range All() {
		for _, t := range ext.MCPTools() {
			name := t.Tool.Name
			if !strings.HasPrefix(name, ToolPrefix) || seen[name] {
				skipped = append(skipped, name)
				continue
			}
			seen[name] = true
			tools = append(tools, t)
		}
	}
	return tools, skipped
}
