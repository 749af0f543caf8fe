package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/jsonnet/pkg/jsonnet"
)

// evalConfig collects every flag the eval path (both the root command's
// default behavior and the explicit `eval` subcommand) understands, per
// spec.md §6 / SPEC_FULL.md §A.1.
type evalConfig struct {
	exec         string
	extStr       []string
	extCode      []string
	tlaStr       []string
	tlaCode      []string
	jpath        []string
	output       string
	stringOutput bool
	maxStack     int
	indent       int
}

func registerEvalFlags(cmd *cobra.Command, cfg *evalConfig) {
	cmd.Flags().StringVarP(&cfg.exec, "exec", "e", "", "evaluate a literal expression instead of a file")
	cmd.Flags().StringArrayVarP(&cfg.extStr, "ext-str", "V", nil, "external variable bound to a string, name=value (repeatable)")
	cmd.Flags().StringArrayVar(&cfg.extCode, "ext-code", nil, "external variable bound to Jsonnet source, name=code (repeatable)")
	cmd.Flags().StringArrayVarP(&cfg.tlaStr, "tla-str", "A", nil, "top-level argument bound to a string, name=value (repeatable)")
	cmd.Flags().StringArrayVar(&cfg.tlaCode, "tla-code", nil, "top-level argument bound to Jsonnet source, name=code (repeatable)")
	cmd.Flags().StringArrayVarP(&cfg.jpath, "jpath", "J", nil, "import search path, first match wins (repeatable)")
	cmd.Flags().StringVarP(&cfg.output, "output", "o", "", "write manifested JSON to file instead of stdout")
	cmd.Flags().BoolVarP(&cfg.stringOutput, "string", "S", false, "string output mode: top-level value must be a string")
	cmd.Flags().IntVar(&cfg.maxStack, "max-stack", 0, "override the evaluator's call-depth bound")
	cmd.Flags().IntVar(&cfg.indent, "indent", 0, "spaces per JSON nesting level (0 = compact)")
}

// runEval implements both `jsonnet <file>` and `jsonnet eval <file>`: read
// the source (a literal -e expression or a file argument), run it through
// pkg/jsonnet, and write the result.
func runEval(cmd *cobra.Command, cfg *evalConfig, args []string) error {
	source, origin, err := evalSource(cfg, args)
	if err != nil {
		return err
	}

	extVars, extCodes, err := splitNameValue(cfg.extStr, cfg.extCode)
	if err != nil {
		return err
	}

	tlaVars, tlaCodes, err := splitNameValue(cfg.tlaStr, cfg.tlaCode)
	if err != nil {
		return err
	}

	slog.Debug("evaluating", "origin", origin, "jpath", cfg.jpath)

	out, err := jsonnet.Evaluate(source, origin, jsonnet.EvalOptions{
		ExtVars:      extVars,
		ExtCodes:     extCodes,
		TLAVars:      tlaVars,
		TLACodes:     tlaCodes,
		SearchPaths:  cfg.jpath,
		MaxStack:     cfg.maxStack,
		Indent:       cfg.indent,
		StringOutput: cfg.stringOutput,
	})
	if err != nil {
		return err
	}

	return writeResult(cmd, cfg, out)
}

func evalSource(cfg *evalConfig, args []string) (source, origin string, err error) {
	if cfg.exec != "" {
		return cfg.exec, "<cmdline>", nil
	}

	if len(args) == 0 {
		return "", "", fmt.Errorf("no input: pass a file or -e/--exec")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}

	return string(data), args[0], nil
}

func writeResult(cmd *cobra.Command, cfg *evalConfig, out string) error {
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	if cfg.output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out)

		return err
	}

	return os.WriteFile(cfg.output, []byte(out), 0o644)
}

// splitNameValue parses a `-V/--ext-str`-style list (plain strings) and a
// `--ext-code`-style list (Jsonnet source) into the two maps
// pkg/jsonnet.EvalOptions wants, erroring on a malformed `name=value` pair
// or a name bound twice across the two lists.
func splitNameValue(plainFlags, codeFlags []string) (plain, code map[string]string, err error) {
	plain = map[string]string{}
	code = map[string]string{}

	for _, kv := range plainFlags {
		name, value, err := splitOne(kv)
		if err != nil {
			return nil, nil, err
		}

		plain[name] = value
	}

	for _, kv := range codeFlags {
		name, value, err := splitOne(kv)
		if err != nil {
			return nil, nil, err
		}

		if _, dup := plain[name]; dup {
			return nil, nil, fmt.Errorf("%q bound both as a string and as code", name)
		}

		code[name] = value
	}

	return plain, code, nil
}

func splitOne(kv string) (name, value string, err error) {
	name, value, ok := strings.Cut(kv, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("malformed name=value argument: %q", kv)
	}

	return name, value, nil
}
