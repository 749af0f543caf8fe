package parser

import (
	"strconv"

	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/pkg/lexer"
)

// parsePrimary parses a single atom: literals, names, grouping, and the
// keyword-introduced forms (local/if/function/error/assert/import/object/
// array). Operator-prefixed and postfix-suffixed expressions are handled
// by the caller, parseUnary/parsePostfix.
func (p *Parser) parsePrimary() ast.Node {
	pos := p.curPos()

	switch p.cur.Type {
	case lexer.NUMBER:
		return p.parseNumber()
	case lexer.STRING:
		val := p.cur.Literal
		p.advance()

		return &ast.Str{base: ast.At(pos), Value: val}
	case lexer.TRUE:
		p.advance()

		return &ast.Bool{base: ast.At(pos), Value: true}
	case lexer.FALSE:
		p.advance()

		return &ast.Bool{base: ast.At(pos), Value: false}
	case lexer.NULL:
		p.advance()

		return &ast.Null{base: ast.At(pos)}
	case lexer.SELF:
		p.advance()

		return &ast.Self{base: ast.At(pos)}
	case lexer.SUPER:
		p.advance()

		if !p.curIs(lexer.DOT) && !p.curIs(lexer.LBRACKET) {
			p.errorf(pos, "super must be followed by . or [ ]")

			return nil
		}

		return &ast.Super{base: ast.At(pos)}
	case lexer.DOLLAR:
		p.advance()

		return &ast.Dollar{base: ast.At(pos)}
	case lexer.IDENT:
		name := p.cur.Literal
		p.advance()

		return &ast.Var{base: ast.At(pos), Name: name}
	case lexer.LPAREN:
		p.advance()

		expr := p.parseExpression(precedenceLowest)

		if _, ok := p.expect(lexer.RPAREN); !ok {
			return nil
		}

		return expr
	case lexer.LBRACKET:
		return p.parseArray()
	case lexer.LBRACE:
		return p.parseObject()
	case lexer.LOCAL:
		return p.parseLocal()
	case lexer.IF:
		return p.parseIf()
	case lexer.FUNCTION:
		return p.parseFunction()
	case lexer.ERROR:
		p.advance()

		expr := p.parseExpression(precedenceLowest)

		return &ast.ErrorExpr{base: ast.At(pos), Expr: expr}
	case lexer.ASSERT:
		return p.parseAssert()
	case lexer.IMPORT:
		p.advance()

		path, ok := p.expect(lexer.STRING)
		if !ok {
			return nil
		}

		return &ast.Import{base: ast.At(pos), Path: path.Literal}
	case lexer.IMPORTSTR:
		p.advance()

		path, ok := p.expect(lexer.STRING)
		if !ok {
			return nil
		}

		return &ast.ImportStr{base: ast.At(pos), Path: path.Literal}
	case lexer.IMPORTBIN:
		p.advance()

		path, ok := p.expect(lexer.STRING)
		if !ok {
			return nil
		}

		return &ast.ImportBin{base: ast.At(pos), Path: path.Literal}
	default:
		p.errorf(pos, "unexpected token %s %q", p.cur.Type, p.cur.Literal)
		p.advance()

		return nil
	}
}

// parseNumber converts a NUMBER token's decimal text to the float64 value
// every Jsonnet number is stored as (spec.md §3).
func (p *Parser) parseNumber() ast.Node {
	pos := p.curPos()

	val, err := strconv.ParseFloat(p.cur.Literal, 64)
	if err != nil {
		p.errorf(pos, "invalid number literal %q", p.cur.Literal)
		p.advance()

		return nil
	}

	p.advance()

	return &ast.Number{base: ast.At(pos), Value: val}
}
