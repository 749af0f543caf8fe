package parser

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/pkg/lexer"
)

// Parser implements recursive-descent parsing with precedence climbing for
// binary operators (spec.md §4.2). Like the lexer, it keeps a two-token
// lookahead window (cur/peek) so it never needs to backtrack.
type Parser struct {
	file string
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token

	errors *ParseErrors
}

// New creates a parser over l. file is attached to every node's position
// and should match the file name the lexer was constructed with.
func New(file string, l *lexer.Lexer) *Parser {
	p := &Parser{file: file, l: l, errors: &ParseErrors{}}
	p.advance()
	p.advance()

	return p
}

// ParseString is the one-shot convenience entry point: lex and parse src in
// one call. file names the source for error positions; pass "" for
// anonymous snippets such as -e/--exec or REPL input.
func ParseString(file, src string) (ast.Node, error) {
	return New(file, lexer.New(file, src)).Parse()
}

// Parse parses a single top-level expression — the whole of a Jsonnet
// document is one expression — and returns the raw (sugared) AST, or the
// accumulated errors if anything went wrong.
func (p *Parser) Parse() (ast.Node, error) {
	expr := p.parseExpression(precedenceLowest)

	if !p.curIs(lexer.EOF) {
		p.errorf(p.curPos(), "unexpected trailing token %s %q", p.cur.Type, p.cur.Literal)
	}

	if p.errors.HasErrors() {
		return nil, p.errors
	}

	return expr, nil
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) curPos() ast.Pos  { return p.tokPos(p.cur) }
func (p *Parser) peekPos() ast.Pos { return p.tokPos(p.peek) }

func (p *Parser) tokPos(tok lexer.Token) ast.Pos {
	return ast.Pos{File: p.file, Line: tok.Line, Column: tok.Column, Offset: tok.Offset}
}

func (p *Parser) errorf(pos ast.Pos, format string, args ...any) {
	p.errors.add(pos, format, args...)
}

// expect consumes the current token if it matches t, else records an error
// and leaves the token stream unchanged so later stages can resynchronize.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, bool) {
	if p.curIs(t) {
		tok := p.cur
		p.advance()

		return tok, true
	}

	p.errorf(p.curPos(), "expected %s, got %s %q", t, p.cur.Type, p.cur.Literal)

	return lexer.Token{}, false
}

// curBinaryPrecedence returns the precedence of the current token when it
// is usable as an infix binary operator, or precedenceLowest otherwise —
// the signal the Pratt loop below uses to stop.
func (p *Parser) curBinaryPrecedence() int {
	if p.curIs(lexer.IN) {
		return precedenceRelational
	}

	if p.curIs(lexer.OPERATOR) {
		if prec, ok := binaryPrecedence[p.cur.Literal]; ok {
			return prec
		}
	}

	return precedenceLowest
}

// parseExpression is the Pratt-parsing entry point: parse one primary
// (with its postfix chain already attached), then keep folding in binary
// operators whose precedence exceeds the caller's floor.
func (p *Parser) parseExpression(precedence int) ast.Node {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for precedence < p.curBinaryPrecedence() {
		opPos := p.curPos()

		if p.curIs(lexer.IN) {
			p.advance()

			if p.curIs(lexer.SUPER) {
				p.advance()
				left = &ast.InSuper{base: ast.At(opPos), Index: left}

				continue
			}

			right := p.parseExpression(precedenceRelational)
			left = &ast.Binary{base: ast.At(opPos), Left: left, Op: ast.BopIn, Right: right}

			continue
		}

		opLit := p.cur.Literal
		opPrec := binaryPrecedence[opLit]
		p.advance()

		right := p.parseExpression(opPrec)
		left = &ast.Binary{base: ast.At(opPos), Left: left, Op: binaryOpFor(opLit), Right: right}
	}

	return left
}

func binaryOpFor(lit string) ast.BinaryOp {
	switch lit {
	case "*":
		return ast.BopMul
	case "/":
		return ast.BopDiv
	case "+":
		return ast.BopAdd
	case "-":
		return ast.BopSub
	case "<<":
		return ast.BopShiftL
	case ">>":
		return ast.BopShiftR
	case ">":
		return ast.BopGreater
	case ">=":
		return ast.BopGreaterEq
	case "<":
		return ast.BopLess
	case "<=":
		return ast.BopLessEq
	case "==":
		return ast.BopEqEq
	case "!=":
		return ast.BopNotEq
	case "&":
		return ast.BopBitAnd
	case "^":
		return ast.BopBitXor
	case "|":
		return ast.BopBitOr
	case "&&":
		return ast.BopAnd
	case "||":
		return ast.BopOr
	case "%":
		return ast.BopPercent
	default:
		return ast.BopAdd
	}
}

// parseUnary handles the tightest-binding prefix operators, then hands off
// to parsePrimary and its postfix chain.
func (p *Parser) parseUnary() ast.Node {
	if p.curIs(lexer.OPERATOR) {
		var op ast.UnaryOp

		switch p.cur.Literal {
		case "-":
			op = ast.UopMinus
		case "!":
			op = ast.UopNot
		case "+":
			op = ast.UopPlus
		case "~":
			op = ast.UopBitNot
		default:
			p.errorf(p.curPos(), "unexpected operator %q", p.cur.Literal)

			return nil
		}

		pos := p.curPos()
		p.advance()

		expr := p.parseExpression(precedenceUnary)
		if expr == nil {
			return nil
		}

		return &ast.Unary{base: ast.At(pos), Op: op, Expr: expr}
	}

	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix attaches `.field`, `[index]`, `[b:c:d]`, and `(args)` to an
// already-parsed primary, left to right; these bind tighter than any binary
// operator (spec.md §4.2 lists them at the top, under precedenceCall).
func (p *Parser) parsePostfix(left ast.Node) ast.Node {
	for left != nil {
		switch {
		case p.curIs(lexer.DOT):
			pos := p.curPos()
			p.advance()

			name, ok := p.expect(lexer.IDENT)
			if !ok {
				return nil
			}

			key := &ast.Str{base: ast.At(p.tokPos(name)), Value: name.Literal}

			if _, isSuper := left.(*ast.Super); isSuper {
				left = &ast.SuperIndex{base: ast.At(pos), Index: key}
			} else {
				left = &ast.Index{base: ast.At(pos), Target: left, Index: key}
			}
		case p.curIs(lexer.LBRACKET):
			left = p.parseIndexOrSlice(left)
		case p.curIs(lexer.LPAREN):
			left = p.parseApply(left)
		default:
			return left
		}
	}

	return left
}

// parseIndexOrSlice disambiguates `target[i]` from `target[b:c:d]` by
// scanning for a ':' before the closing ']'; the begin/end/step parts may
// each be omitted.
func (p *Parser) parseIndexOrSlice(target ast.Node) ast.Node {
	pos := p.curPos()
	p.advance() // consume '['

	var begin, end, step ast.Node

	if !p.curIs(lexer.COLON) && !p.curIs(lexer.RBRACKET) {
		begin = p.parseExpression(precedenceLowest)
	}

	if !p.curIs(lexer.COLON) {
		if _, ok := p.expect(lexer.RBRACKET); !ok {
			return nil
		}

		if _, isSuper := target.(*ast.Super); isSuper {
			return &ast.SuperIndex{base: ast.At(pos), Index: begin}
		}

		return &ast.Index{base: ast.At(pos), Target: target, Index: begin}
	}

	p.advance() // consume first ':'

	if !p.curIs(lexer.COLON) && !p.curIs(lexer.RBRACKET) {
		end = p.parseExpression(precedenceLowest)
	}

	if p.curIs(lexer.COLON) {
		p.advance()

		if !p.curIs(lexer.RBRACKET) {
			step = p.parseExpression(precedenceLowest)
		}
	}

	if _, ok := p.expect(lexer.RBRACKET); !ok {
		return nil
	}

	return &ast.Slice{base: ast.At(pos), Target: target, BeginIndex: begin, EndIndex: end, Step: step}
}

// parseApply parses the `(args)` of a call. Positional arguments must
// precede named ones; the evaluator rejects duplicate/unknown names
// (spec.md §4.4), not the parser.
func (p *Parser) parseApply(target ast.Node) ast.Node {
	pos := p.curPos()
	p.advance() // consume '('

	var args []ast.Arg

	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.IDENT) && p.peekIs(lexer.OPERATOR) && p.peek.Literal == "=" {
			name := p.cur.Literal
			p.advance()
			p.advance() // consume '='

			expr := p.parseExpression(precedenceLowest)
			args = append(args, ast.Arg{Name: name, Expr: expr})
		} else {
			expr := p.parseExpression(precedenceLowest)
			args = append(args, ast.Arg{Expr: expr})
		}

		if p.curIs(lexer.COMMA) {
			p.advance()

			continue
		}

		break
	}

	tailStrict := false

	if _, ok := p.expect(lexer.RPAREN); !ok {
		return nil
	}

	if p.curIs(lexer.TAILSTRICT) {
		tailStrict = true
		p.advance()
	}

	return &ast.Apply{base: ast.At(pos), Target: target, Args: args, TailStrict: tailStrict}
}
