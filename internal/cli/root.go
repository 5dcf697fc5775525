// Package cli implements the loopchart command-line interface.
//
// This package provides commands for rendering the decision loop and the
// comparison chart, printing their geometry, previewing them over HTTP and
// managing the artifact cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Write PNG, SVG, PDF or JSON files for one or both diagrams
//   - show: Print connector geometry or chart data as a table
//   - serve: Serve rendered diagrams over HTTP
//   - cache: Manage the artifact cache
//
// # Configuration
//
// Defaults come from ./loopchart.toml (or --config), then LOOPCHART_*
// environment variables (optionally loaded from .env), then flags.
//
// # Example
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"
)

// Execute runs the loopchart CLI with os.Args and returns an error if any
// command fails.
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
