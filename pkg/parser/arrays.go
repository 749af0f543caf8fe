package parser

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/pkg/lexer"
)

// parseArray parses both plain array literals `[a, b, c]` and array
// comprehensions `[body for x in e (if cond)* (for/if ...)*]`; the two
// forms diverge only after the first element, so they share one parser.
func (p *Parser) parseArray() ast.Node {
	pos := p.curPos()
	p.advance() // consume '['

	if p.curIs(lexer.RBRACKET) {
		p.advance()

		return &ast.Array{base: ast.At(pos)}
	}

	first := p.parseExpression(precedenceLowest)

	if p.curIs(lexer.FOR) {
		specs, ok := p.parseCompSpecs()
		if !ok {
			return nil
		}

		if _, ok := p.expect(lexer.RBRACKET); !ok {
			return nil
		}

		return &ast.ArrayComp{base: ast.At(pos), Body: first, Specs: specs}
	}

	elements := []ast.Node{first}

	for p.curIs(lexer.COMMA) {
		p.advance()

		if p.curIs(lexer.RBRACKET) {
			break
		}

		elements = append(elements, p.parseExpression(precedenceLowest))
	}

	if _, ok := p.expect(lexer.RBRACKET); !ok {
		return nil
	}

	return &ast.Array{base: ast.At(pos), Elements: elements}
}

// parseCompSpecs parses one or more `for x in e` / `if e` clauses, in
// source order, starting at the leading `for` (already confirmed present
// by the caller).
func (p *Parser) parseCompSpecs() ([]ast.CompSpec, bool) {
	var specs []ast.CompSpec

	for p.curIs(lexer.FOR) || p.curIs(lexer.IF) {
		if p.curIs(lexer.FOR) {
			p.advance()

			name, ok := p.expect(lexer.IDENT)
			if !ok {
				return nil, false
			}

			if _, ok := p.expect(lexer.IN); !ok {
				return nil, false
			}

			expr := p.parseExpression(precedenceLowest)
			specs = append(specs, ast.CompSpec{Kind: ast.CompFor, VarName: name.Literal, Expr: expr})
		} else {
			p.advance()

			expr := p.parseExpression(precedenceLowest)
			specs = append(specs, ast.CompSpec{Kind: ast.CompIf, Expr: expr})
		}
	}

	return specs, true
}
