// Command eventboard summarizes an event registration spreadsheet, renders
// its charts, exports the filtered table and serves the dashboard API.
package main

import (
	"fmt"
	"os"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
