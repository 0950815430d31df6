// Package version holds build metadata, overridden at build time via
// -ldflags "-X github.com/bng0y/managed-notifications/internal/version.Version=...".
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
