package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conneroisu/jsonnet/pkg/jsonnet"
)

// Color definitions for REPL output, grounded directly on go-mix's
// repl.go palette (_examples/akashmaji946-go-mix/repl/repl.go): blue for
// banner rules, green for the banner itself, cyan for instructions, and
// red for errors.
var (
	blueColor  = color.New(color.FgBlue)
	greenColor = color.New(color.FgGreen)
	cyanColor  = color.New(color.FgCyan)
	redColor   = color.New(color.FgRed)
)

const replBanner = `jsonnet repl`

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Jsonnet REPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd.OutOrStdout())
		},
	}
}

// runRepl reads one Jsonnet expression per line and evaluates it against
// a fresh evaluator each time — Jsonnet has no statements, so there is no
// cross-line state to persist, unlike go-mix's Nix REPL which keeps one
// evaluator alive for the whole session.
func runRepl(w io.Writer) error {
	printBanner(w)

	rl, err := readline.New("jsonnet> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(w, "bye")

			return nil
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		if line == ".exit" {
			fmt.Fprintln(w, "bye")

			return nil
		}

		rl.SaveHistory(line)

		out, err := jsonnet.Evaluate(line, "<repl>", jsonnet.EvalOptions{})
		if err != nil {
			redColor.Fprintf(w, "%v\n", err)

			continue
		}

		fmt.Fprintln(w, out)
	}
}

func printBanner(w io.Writer) {
	rule := strings.Repeat("-", len(replBanner))

	blueColor.Fprintf(w, "%s\n", rule)
	greenColor.Fprintf(w, "%s\n", replBanner)
	blueColor.Fprintf(w, "%s\n", rule)
	cyanColor.Fprintf(w, "%s\n", "Type a Jsonnet expression and press enter. .exit or Ctrl+D to quit.")
	blueColor.Fprintf(w, "%s\n", rule)
}
