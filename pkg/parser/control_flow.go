package parser

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/pkg/lexer"
)

// parseLocal parses `local <bind> (, <bind>)* ; <body>`. Each bind is
// either `name = expr` or the function-sugar `name(params) = expr`, which
// is folded into `name = function(params) expr` right here (spec.md §4.3
// rule 4 — the desugarer never needs to see the sugared form at all).
func (p *Parser) parseLocal() ast.Node {
	pos := p.curPos()
	p.advance() // consume 'local'

	var binds []ast.LocalBind

	for {
		bind, ok := p.parseLocalBind()
		if !ok {
			return nil
		}

		binds = append(binds, bind)

		if p.curIs(lexer.COMMA) {
			p.advance()

			continue
		}

		break
	}

	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}

	body := p.parseExpression(precedenceLowest)

	return &ast.Local{base: ast.At(pos), Binds: binds, Body: body}
}

func (p *Parser) parseLocalBind() (ast.LocalBind, bool) {
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return ast.LocalBind{}, false
	}

	if p.curIs(lexer.LPAREN) {
		fnPos := p.tokPos(name)

		params, ok := p.parseParams()
		if !ok {
			return ast.LocalBind{}, false
		}

		if _, ok := p.expectOperator("="); !ok {
			return ast.LocalBind{}, false
		}

		body := p.parseExpression(precedenceLowest)

		return ast.LocalBind{
			Name: name.Literal,
			Expr: &ast.Function{base: ast.At(fnPos), Params: params, Body: body},
		}, true
	}

	if _, ok := p.expectOperator("="); !ok {
		return ast.LocalBind{}, false
	}

	expr := p.parseExpression(precedenceLowest)

	return ast.LocalBind{Name: name.Literal, Expr: expr}, true
}

// expectOperator consumes the current token if it is an OPERATOR token
// with exactly this literal spelling; used for '=' which the lexer, having
// no grammar awareness, only ever emits as a generic OPERATOR token.
func (p *Parser) expectOperator(lit string) (lexer.Token, bool) {
	if p.curIs(lexer.OPERATOR) && p.cur.Literal == lit {
		tok := p.cur
		p.advance()

		return tok, true
	}

	p.errorf(p.curPos(), "expected %q, got %s %q", lit, p.cur.Type, p.cur.Literal)

	return lexer.Token{}, false
}

// parseParams parses a parenthesized, comma-separated parameter list,
// consuming both the opening and closing parens. Parameters may carry a
// default expression (`x=e`); defaults are evaluated lazily at call time
// against the function's own captured environment (spec.md §4.3 rule 5).
func (p *Parser) parseParams() ([]ast.Param, bool) {
	if _, ok := p.expect(lexer.LPAREN); !ok {
		return nil, false
	}

	var params []ast.Param

	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		name, ok := p.expect(lexer.IDENT)
		if !ok {
			return nil, false
		}

		param := ast.Param{Name: name.Literal}

		if p.curIs(lexer.OPERATOR) && p.cur.Literal == "=" {
			p.advance()

			param.Default = p.parseExpression(precedenceLowest)
		}

		params = append(params, param)

		if p.curIs(lexer.COMMA) {
			p.advance()

			continue
		}

		break
	}

	if _, ok := p.expect(lexer.RPAREN); !ok {
		return nil, false
	}

	return params, true
}

// parseIf parses `if cond then texpr [else fexpr]`. A missing else leaves
// Conditional.False nil; the evaluator treats that as null (spec.md §3).
func (p *Parser) parseIf() ast.Node {
	pos := p.curPos()
	p.advance() // consume 'if'

	cond := p.parseExpression(precedenceLowest)

	if _, ok := p.expect(lexer.THEN); !ok {
		return nil
	}

	trueExpr := p.parseExpression(precedenceLowest)

	var falseExpr ast.Node

	if p.curIs(lexer.ELSE) {
		p.advance()

		falseExpr = p.parseExpression(precedenceLowest)
	}

	return &ast.Conditional{base: ast.At(pos), Cond: cond, True: trueExpr, False: falseExpr}
}

// parseFunction parses `function(params) body`.
func (p *Parser) parseFunction() ast.Node {
	pos := p.curPos()
	p.advance() // consume 'function'

	params, ok := p.parseParams()
	if !ok {
		return nil
	}

	body := p.parseExpression(precedenceLowest)

	return &ast.Function{base: ast.At(pos), Params: params, Body: body}
}

// parseAssert parses `assert cond [: msg] ; rest`. The raw Assert node is
// eliminated by the desugarer (spec.md §4.3 rule 9); the parser only
// builds it.
func (p *Parser) parseAssert() ast.Node {
	pos := p.curPos()
	p.advance() // consume 'assert'

	cond := p.parseExpression(precedenceLowest)

	var message ast.Node

	if p.curIs(lexer.COLON) {
		p.advance()

		message = p.parseExpression(precedenceLowest)
	}

	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}

	rest := p.parseExpression(precedenceLowest)

	return &ast.Assert{base: ast.At(pos), Cond: cond, Message: message, Rest: rest}
}
