package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// NewRootCmd builds the jsonnet CLI: evaluating a file or -e/--exec
// expression directly (the common case), an explicit `eval` subcommand of
// the same shape, and an interactive `repl` subcommand — grounded on
// holomush-holomush's cmd/holomush.NewRootCmd (one root command,
// cmd.AddCommand per subcommand, a persistent flag for cross-cutting
// concerns).
func NewRootCmd() *cobra.Command {
	cfg := &evalConfig{}

	root := &cobra.Command{
		Use:           "jsonnet [flags] [file]",
		Short:         "Evaluate Jsonnet to JSON",
		Long:          "jsonnet evaluates a Jsonnet program and manifests the result as JSON.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, cfg, args)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "raise log level from warn to debug")
	registerEvalFlags(root, cfg)

	root.AddCommand(newEvalCmd())
	root.AddCommand(newReplCmd())

	return root
}

func newEvalCmd() *cobra.Command {
	cfg := &evalConfig{}

	cmd := &cobra.Command{
		Use:   "eval [flags] [file]",
		Short: "Evaluate Jsonnet to JSON (same as the default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, cfg, args)
		},
	}

	registerEvalFlags(cmd, cfg)

	return cmd
}

// setupLogging raises the default slog level from Warn to Debug under
// -v/--verbose, per SPEC_FULL.md §A.4 — the evaluator core itself takes
// no logger, so this is strictly a CLI-boundary concern.
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
