// Package build carries version information injected at build time.
package build

import "fmt"

// Set via -ldflags at release build time.
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// String returns a single human-readable build info line.
func String() string {
	return fmt.Sprintf("courtnotify %s (commit %s, built %s)", Version, CommitSHA, BuildDate)
}
