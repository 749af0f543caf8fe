package parser

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/pkg/lexer"
)

// defaultAssertMessage is what an object assertion reports when the
// author didn't supply one, matching the message Jsonnet implementations
// conventionally use.
const defaultAssertMessage = "Object assertion failed."

// parseObject parses an object literal's members — interleaved `local`
// binds, `assert` statements, and fields — or, when the first field turns
// out to be a lone computed key immediately followed by `for`, an object
// comprehension instead (spec.md §4.2).
func (p *Parser) parseObject() ast.Node {
	pos := p.curPos()
	p.advance() // consume '{'

	if p.curIs(lexer.RBRACE) {
		p.advance()

		return &ast.Object{base: ast.At(pos)}
	}

	var (
		locals  []ast.LocalBind
		asserts []ast.Node
		fields  []ast.Field
	)

	for {
		switch {
		case p.curIs(lexer.LOCAL):
			p.advance()

			bind, ok := p.parseLocalBind()
			if !ok {
				return nil
			}

			locals = append(locals, bind)
		case p.curIs(lexer.ASSERT):
			p.advance()

			cond := p.parseExpression(precedenceLowest)

			var message ast.Node

			if p.curIs(lexer.COLON) {
				p.advance()

				message = p.parseExpression(precedenceLowest)
			}

			asserts = append(asserts, assertToCheckNode(cond, message))
		default:
			field, comp, ok := p.parseField()
			if !ok {
				return nil
			}

			if comp {
				if len(fields) > 0 || len(asserts) > 0 {
					p.errorf(pos, "object comprehension cannot have other fields or asserts")

					return nil
				}

				specs, ok := p.parseCompSpecs()
				if !ok {
					return nil
				}

				if _, ok := p.expect(lexer.RBRACE); !ok {
					return nil
				}

				return &ast.ObjectComp{base: ast.At(pos), Locals: locals, Field: field, Specs: specs}
			}

			fields = append(fields, field)
		}

		if p.curIs(lexer.COMMA) {
			p.advance()

			if p.curIs(lexer.RBRACE) {
				break
			}

			continue
		}

		break
	}

	if _, ok := p.expect(lexer.RBRACE); !ok {
		return nil
	}

	return &ast.Object{base: ast.At(pos), Locals: locals, Asserts: asserts, Fields: fields}
}

// assertToCheckNode turns an object-level `assert cond [: msg]` into the
// expression the evaluator actually forces: true on success, a runtime
// error on failure. This is the object-assert analogue of spec.md §4.3
// rule 9, applied directly by the parser since Object.Asserts has no
// dedicated message slot to carry the raw form through to the desugarer.
func assertToCheckNode(cond, message ast.Node) ast.Node {
	pos := cond.Position()

	if message == nil {
		message = &ast.Str{base: ast.At(pos), Value: defaultAssertMessage}
	}

	return &ast.Conditional{
		base:  ast.At(pos),
		Cond:  cond,
		True:  &ast.Bool{base: ast.At(pos), Value: true},
		False: &ast.ErrorExpr{base: ast.At(pos), Expr: message},
	}
}

// parseField parses one field of an object literal. comp reports whether
// this turned out to be the lone field of a comprehension (a computed key
// whose value expression is immediately followed by `for`); in that case
// field.Expr already holds the comprehension body.
func (p *Parser) parseField() (ast.Field, bool, bool) {
	pos := p.curPos()

	var (
		name       string
		key        ast.Node
		isComputed bool
	)

	switch {
	case p.curIs(lexer.IDENT):
		name = p.cur.Literal
		p.advance()
	case p.curIs(lexer.STRING):
		name = p.cur.Literal
		p.advance()
	case p.curIs(lexer.LBRACKET):
		p.advance()

		key = p.parseExpression(precedenceLowest)
		isComputed = true

		if _, ok := p.expect(lexer.RBRACKET); !ok {
			return ast.Field{}, false, false
		}
	default:
		p.errorf(pos, "expected field name, got %s %q", p.cur.Type, p.cur.Literal)

		return ast.Field{}, false, false
	}

	// Method sugar: `name(params): body`.
	if p.curIs(lexer.LPAREN) {
		params, ok := p.parseParams()
		if !ok {
			return ast.Field{}, false, false
		}

		hide, plusSuper, ok := p.parseFieldHideAndPlus()
		if !ok {
			return ast.Field{}, false, false
		}

		body := p.parseExpression(precedenceLowest)
		fn := &ast.Function{base: ast.At(pos), Params: params, Body: body}

		return ast.Field{Pos: pos, Name: name, Key: key, Hide: hide, PlusSuper: plusSuper, Expr: fn}, false, true
	}

	hide, plusSuper, ok := p.parseFieldHideAndPlus()
	if !ok {
		return ast.Field{}, false, false
	}

	value := p.parseExpression(precedenceLowest)

	field := ast.Field{Pos: pos, Name: name, Key: key, Hide: hide, PlusSuper: plusSuper, Expr: value}

	if isComputed && p.curIs(lexer.FOR) {
		return field, true, true
	}

	return field, false, true
}

// parseFieldHideAndPlus consumes the field separator: an optional `+`
// (additive field) followed by one of `:`, `::`, `:::`.
func (p *Parser) parseFieldHideAndPlus() (ast.ObjectFieldHide, bool, bool) {
	plusSuper := false

	if p.curIs(lexer.OPERATOR) && p.cur.Literal == "+" {
		plusSuper = true
		p.advance()
	}

	switch {
	case p.curIs(lexer.COLONCOLONCOLON):
		p.advance()

		return ast.ObjectFieldForced, plusSuper, true
	case p.curIs(lexer.COLONCOLON):
		p.advance()

		return ast.ObjectFieldHidden, plusSuper, true
	case p.curIs(lexer.COLON):
		p.advance()

		return ast.ObjectFieldVisible, plusSuper, true
	default:
		p.errorf(p.curPos(), "expected field separator, got %s %q", p.cur.Type, p.cur.Literal)

		return 0, false, false
	}
}
