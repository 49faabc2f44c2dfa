// Package buildinfo reports which slidedeck build is running.
//
// Release builds stamp the variables with the linker:
//
//	go build -ldflags "\
//	    -X github.com/matzehuels/slidedeck/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/slidedeck/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/slidedeck/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/slidedeck
//
// Local builds keep the placeholder values.
package buildinfo

import "fmt"

// Stamped at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build details, one per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the --version output template for the root command.
func Template() string {
	return "{{.Name}} " + Version + " (" + Commit + ", built " + Date + ")\n"
}
