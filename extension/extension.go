// Package extension is how docver's command groups plug in. Each extension
// registers itself from init() and contributes cobra commands, MCP tools,
// or both. Optional interfaces add setup, event handling and storeless
// commands.
package extension

import "github.com/spf13/cobra"

// Extension is implemented by every command group.
type Extension interface {
	// Name is unique across extensions.
	Name() string

	// Commands are added to the root command.
	Commands() []*cobra.Command

	// MCPTools are added to the server by "docver serve". Names must start
	// with ToolPrefix.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context once the document
// service is open, before any command runs.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// EventHandler extensions are told about committed writes. See Dispatch.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}

// Storeless extensions name top-level commands that must run without an
// open store: bootstrap commands, and commands that open their own service.
type Storeless interface {
	NoStoreCommands() []string
}
