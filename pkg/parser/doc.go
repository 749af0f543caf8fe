// Package parser turns a pkg/lexer token stream into the raw (sugared)
// internal/ast tree: recursive descent for grammar structure, precedence
// climbing for binary operators, with a two-token (cur/peek) lookahead
// window. It does not desugar — see internal/desugar — and does not
// evaluate — see internal/eval.
package parser
