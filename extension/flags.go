// flags.go names the flags shared by extension commands. Flag<Name>
// matches the kebab-case flag ("dry-run" is FlagDryRun).

package extension

const (
	// Boolean flags

	FlagActive   = "active"   // Only documents that are not archived
	FlagArchived = "archived" // Only archived documents
	FlagAll      = "all"      // Every project, not just the current one
	FlagDryRun   = "dry-run"  // Preview without making changes
	FlagFailed   = "failed"   // Only failed operations
	FlagLocal    = "local"    // Use local scope (gitignored)
	FlagLong     = "long"     // Long format output
	FlagShare    = "share"    // Mark as shared (committed)
	FlagTree     = "tree"     // Tree view output

	// String flags

	FlagSince = "since" // Only entries newer than this age (e.g., "7d")
	FlagStale = "stale" // Age threshold for the newest version (e.g., "3m")

	// Integer flags

	FlagLimit = "limit" // Maximum number of entries
)
