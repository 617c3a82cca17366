package parser

import (
	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/lexer"
)

// parseExpr parses a full expression: the top level is the function-
// type arrow, which is right-associative and binds more loosely than
// application.
func (p *Parser) parseExpr() ast.Raw {
	return p.parseArrow()
}

// parseArrow handles `(x : A) -> B`, `{x : A} -> B`, and the
// non-dependent `A -> B` (sugar for a Pi with a discarded name),
// right-associative.
func (p *Parser) parseArrow() ast.Raw {
	pos := p.curPos()

	if p.curIs(lexer.LPAREN) && p.isBinderGroup() {
		name, ty := p.parseBinderGroup(lexer.LPAREN, lexer.RPAREN)
		if !p.expect(lexer.ARROW) {
			return nil
		}
		body := p.parseArrow()
		return &ast.Pi{Name: name, Type: ty, Icit: ast.Expl, Body: body, Pos: pos}
	}
	if p.curIs(lexer.LBRACE) && p.isBinderGroup() {
		name, ty := p.parseBinderGroup(lexer.LBRACE, lexer.RBRACE)
		if !p.expect(lexer.ARROW) {
			return nil
		}
		body := p.parseArrow()
		return &ast.Pi{Name: name, Type: ty, Icit: ast.Impl, Body: body, Pos: pos}
	}

	lhs := p.parseApp()
	if p.curIs(lexer.ARROW) {
		p.next()
		rhs := p.parseArrow()
		return &ast.Pi{Name: "_", Type: lhs, Icit: ast.Expl, Body: rhs, Pos: pos}
	}
	return lhs
}

// isBinderGroup reports whether the current `(`/`{` opens a
// `name : Type` binder (as opposed to a plain parenthesized
// expression): true exactly when it is immediately followed by
// IDENT COLON.
func (p *Parser) isBinderGroup() bool {
	return p.peekIs(lexer.IDENT) && p.peek2Is(lexer.COLON)
}

// parseBinderGroup parses `open IDENT : Type close` and returns the
// name and type, leaving the parser positioned just past close.
func (p *Parser) parseBinderGroup(open, close lexer.TokenType) (string, ast.Raw) {
	p.expect(open)
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	ty := p.parseExpr()
	p.expect(close)
	return name, ty
}

// parseApp parses application: an atom, optionally followed by a `!`
// suppress-insertion marker, then zero or more argument forms (plain
// atoms for explicit args, `{expr}` for positional implicit args,
// `{name = expr}` for named implicit args).
func (p *Parser) parseApp() ast.Raw {
	fn := p.parseAtom()
	if fn == nil {
		return nil
	}
	bang := false
	if p.curIs(lexer.BANG) {
		bang = true
		p.next()
	}
	for p.startsArg() {
		pos := p.curPos()
		if p.curIs(lexer.LBRACE) {
			p.next()
			name, argExpr := p.parseImplicitArg()
			p.expect(lexer.RBRACE)
			fn = &ast.App{Func: fn, Arg: argExpr, Icit: ast.Impl, Name: name, Bang: bang, Pos: pos}
		} else {
			arg := p.parseAtom()
			if arg == nil {
				break
			}
			fn = &ast.App{Func: fn, Arg: arg, Icit: ast.Expl, Bang: bang, Pos: pos}
		}
		bang = false
	}
	return fn
}

// parseImplicitArg parses the inside of `{...}` after the opening
// brace has been consumed: either `name = expr` (named) or `expr`
// (positional implicit).
func (p *Parser) parseImplicitArg() (string, ast.Raw) {
	if p.curIs(lexer.IDENT) && p.peekIs(lexer.ASSIGN) {
		name := p.curToken.Literal
		p.next() // ident
		p.next() // '='
		return name, p.parseExpr()
	}
	return "", p.parseExpr()
}

// startsArg reports whether the current token can begin an
// application argument (an atom, or an implicit-argument brace). An
// identifier at the start of a line (column 1) followed by `:` or `=`
// starts the next declaration and is not an argument.
func (p *Parser) startsArg() bool {
	switch p.curToken.Type {
	case lexer.IDENT:
		return p.curToken.Column != 1 || (!p.peekIs(lexer.COLON) && !p.peekIs(lexer.ASSIGN))
	case lexer.U_KW, lexer.UNDERSCORE, lexer.LPAREN, lexer.LBRACE:
		return true
	}
	return false
}

// parseAtom parses a variable, the universe, a hole, a parenthesized
// expression, a lambda, or a let.
func (p *Parser) parseAtom() ast.Raw {
	pos := p.curPos()
	switch p.curToken.Type {
	case lexer.IDENT:
		name := p.curToken.Literal
		p.next()
		return &ast.Var{Name: name, Pos: pos}

	case lexer.U_KW:
		p.next()
		return &ast.U{Pos: pos}

	case lexer.UNDERSCORE:
		p.next()
		return &ast.Hole{Pos: pos}

	case lexer.LAMBDA:
		return p.parseLambda()

	case lexer.LET:
		return p.parseLet()

	case lexer.LPAREN:
		p.next()
		e := p.parseExpr()
		p.expect(lexer.RPAREN)
		return e

	default:
		p.noPrefixParseFnError(p.curToken.Type)
		p.next()
		return nil
	}
}

// parseLambda parses `\x y z. body`, `\{x} y. body`, or
// `\(x : A) y. body`, desugaring multiple parameters into nested
// ast.Lam nodes (innermost binds the last name).
func (p *Parser) parseLambda() ast.Raw {
	pos := p.curPos()
	p.expect(lexer.LAMBDA)

	type param struct {
		name string
		ty   ast.Raw
		icit ast.Icit
	}
	var params []param
	for !p.curIs(lexer.DOT) && !p.curIs(lexer.EOF) {
		switch {
		case p.curIs(lexer.LPAREN):
			name, ty := p.parseBinderGroup(lexer.LPAREN, lexer.RPAREN)
			params = append(params, param{name, ty, ast.Expl})
		case p.curIs(lexer.LBRACE):
			if p.isBinderGroup() {
				name, ty := p.parseBinderGroup(lexer.LBRACE, lexer.RBRACE)
				params = append(params, param{name, ty, ast.Impl})
			} else {
				p.next()
				name := p.curToken.Literal
				p.expect(lexer.IDENT)
				p.expect(lexer.RBRACE)
				params = append(params, param{name, nil, ast.Impl})
			}
		case p.curIs(lexer.IDENT):
			name := p.curToken.Literal
			p.next()
			params = append(params, param{name, nil, ast.Expl})
		default:
			p.reportExpected(lexer.IDENT, "add a parameter name")
			p.next()
		}
	}
	p.expect(lexer.DOT)
	body := p.parseExpr()

	for i := len(params) - 1; i >= 0; i-- {
		pm := params[i]
		body = &ast.Lam{Name: pm.name, Type: pm.ty, Icit: pm.icit, Body: body, Pos: pos}
	}
	return body
}

// parseLet parses `let name [: Type] = value in body`.
func (p *Parser) parseLet() ast.Raw {
	pos := p.curPos()
	p.expect(lexer.LET)
	name := p.curToken.Literal
	p.expect(lexer.IDENT)

	var ty ast.Raw
	if p.curIs(lexer.COLON) {
		p.next()
		ty = p.parseExpr()
	}
	p.expect(lexer.ASSIGN)
	val := p.parseExpr()
	p.expect(lexer.IN)
	body := p.parseExpr()
	return &ast.Let{Name: name, Type: ty, Value: val, Body: body, Pos: pos}
}
