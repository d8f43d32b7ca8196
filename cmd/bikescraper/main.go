// Command bikescraper maintains a cross-brand master dataset of bike
// listings: ingest raw snapshots, list entries, export for downstream use.
package main

import (
	"github.com/RolandGoud/bikescraper/cmd/bikescraper/cmd"
)

// Build-time variables set by ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
