// Package all imports all built-in docver extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/docver/extension/core"
	_ "github.com/jpl-au/docver/extension/document"
)
