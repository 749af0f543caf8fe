// Command jsonnet is the command-line front-end over pkg/jsonnet: a thin
// cobra-based CLI (spec.md §6's "external collaborator... listed for
// completeness"), grounded in the same root-command-plus-subcommands shape
// holomush-holomush's cmd/holomush uses (NewRootCmd + cobra.AddCommand per
// subcommand), wired with the teacher's own declared-but-unused cobra and
// pflag dependencies rather than the teacher's original flag-based main.go.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
