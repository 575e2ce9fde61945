// Package cli is the entry point for the colbench binary.
package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Run executes the benchmark. The binary takes no flags and no
// configuration; everything it measures is fixed in source.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		if isHelpArg(args[0]) {
			printUsage(stdout)
			return ExitOK
		}
		fmt.Fprintf(stderr, "Unexpected argument: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}
	return runBench(stdout, stderr)
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  colbench")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Times three query call paths against ClickHouse, with connections")
	fmt.Fprintln(w, "closed and left open, and writes runs.csv and summary.csv to the")
	fmt.Fprintln(w, "working directory.")
}
