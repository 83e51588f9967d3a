// Package buildinfo exposes the version stamped into the hellion-blueprint binary.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/hellion-blueprint
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the build information as "key: value" lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template for cobra's --version flag.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies the binary to remote stores and HTTP clients.
func UserAgent() string {
	return "hellion-blueprint/" + Version
}
