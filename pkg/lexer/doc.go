// Package lexer implements the single-pass hand-written scanner that turns
// Jsonnet source text into a stream of Token values for pkg/parser.
//
// The lexer recognizes:
//   - identifiers and the reserved-word table in token.go
//   - JSON-compatible numeric literals, including exponents
//   - double- and single-quoted strings with the full Jsonnet escape set
//   - verbatim strings (@'...'/@"...") with doubled-quote escaping
//   - indentation-stripped block strings (|||...|||)
//   - //, #, and non-nesting /* */ comments
//   - every symbol and operator in the language grammar
//
// It does not know about operator precedence or grammar; that is pkg/parser's
// job (spec.md §4.1/§4.2).
package lexer
