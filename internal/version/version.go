package version

import "fmt"

// Tagline is the application's tagline used in help text
const Tagline = "Tideline: practice safe decisions at sea, one scenario at a time"

// Build information injected at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
)

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("tideline %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}
