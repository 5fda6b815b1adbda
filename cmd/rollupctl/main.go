// Command rollupctl is a small inspection CLI over the rollup package:
// it evaluates single append/rollup/subtree operations given on the
// command line and prints the resulting tree state. It is not part of
// the rollup package's public API; it exists purely to exercise it
// from a shell.
//
// Usage:
//
//	rollupctl <command> [flags]
//
// Commands:
//
//	append   append one leaf to a tree state
//	rollup   append a batch of leaves to a tree state
//	subtree  compute the root of a depth-d subtree's leaves
//	version  print version and exit
package main

import (
	"fmt"
	"os"

	"github.com/eth2030/merkleroll/pkg/log"
)

var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in
// isolation.
func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: rollupctl <append|rollup|subtree|version> [flags]")
		return 2
	}

	cmd, rest := args[0], args[1:]
	if cmd == "version" || cmd == "--version" {
		fmt.Printf("rollupctl %s (commit %s)\n", version, commit)
		return 0
	}

	logger := log.Default().Module("rollupctl")

	switch cmd {
	case "append":
		return runAppend(logger, rest)
	case "rollup":
		return runRollUp(logger, rest)
	case "subtree":
		return runSubTree(logger, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		return 2
	}
}
