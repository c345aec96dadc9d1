// SPDX-License-Identifier: EPL-2.0

// Package main provides the audpipe command line tool.
//
// Usage:
//
//	audpipe [flags] <command> [args]
//
// Commands:
//
//	convert  - Convert an audio file, optionally changing its sample type
//	info     - Print the stream type of an audio file
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audpipe/cmd/audpipe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
