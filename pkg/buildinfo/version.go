// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/loopchart/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/loopchart/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/loopchart/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// CacheVersion is mixed into artifact cache keys. Development builds return
// the commit so artifacts from older binaries are never served.
func CacheVersion() string {
	if Version == "dev" {
		return Version + "-" + Commit
	}
	return Version
}
