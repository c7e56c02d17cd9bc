// Package buildinfo holds version details stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/taxtracker/taxtracker/internal/buildinfo.Version=v1.0.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build details for --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
