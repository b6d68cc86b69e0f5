package version

import "fmt"

// Build information injected at build time via ldflags
var (
	Version = "dev"     // Semantic version or "dev"
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date (RFC3339)
)

// String returns formatted version information
func String() string {
	return fmt.Sprintf("gittrainer %s (commit: %s, built: %s)", Version, Commit, Date)
}
