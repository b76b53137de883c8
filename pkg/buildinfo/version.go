// Package buildinfo carries the version stamped into roadnet binaries.
//
// Release builds set the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/roadnet/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/roadnet/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/roadnet/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/roadnet
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information as three labelled lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
