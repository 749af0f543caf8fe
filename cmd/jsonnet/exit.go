package main

import "github.com/conneroisu/jsonnet/internal/diag"

// exitCodeFor maps a pipeline error to the process exit status spec.md §6
// documents: 0 is handled by main's success path and never reaches here;
// 1 covers lex/parse/static errors (a bad program), 2 covers a runtime
// error (a program that failed while running), and any error this CLI
// raised itself (bad flags, unreadable file) falls back to 1.
func exitCodeFor(err error) int {
	stage, ok := diag.Stage(err)
	if !ok {
		return 1
	}

	if stage == diag.CodeRuntime {
		return 2
	}

	return 1
}
