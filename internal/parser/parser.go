// Package parser turns a token stream into the raw syntax tree
// consumed by the elaborator (internal/ast), for the tiny `.stt`
// declaration language: variables, application with icitness, lambda,
// dependent function types, let, the universe, holes, and `assume`
// postulates (spec.md §6).
package parser

import (
	"fmt"

	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/lexer"
)

// Parser is a simple recursive-descent reader over a three-token
// lookahead (curToken/peekToken/peek2Token), mirroring the teacher's
// curToken/peekToken shape but extended by one token: the grammar
// needs to distinguish `(x : A) -> B` from a plain parenthesized
// expression by looking past the opening delimiter and the bound name.
type Parser struct {
	l *lexer.Lexer

	curToken   lexer.Token
	peekToken  lexer.Token
	peek2Token lexer.Token

	errors []error
}

// New returns a parser positioned at the first token of l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.peek2Token
	p.peek2Token = p.l.NextToken()
}

func (p *Parser) curPos() ast.Pos {
	return ast.Pos{File: p.curToken.File, Line: p.curToken.Line, Column: p.curToken.Column}
}

func (p *Parser) curIs(t lexer.TokenType) bool   { return p.curToken.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool  { return p.peekToken.Type == t }
func (p *Parser) peek2Is(t lexer.TokenType) bool { return p.peek2Token.Type == t }

// expect advances past the current token if it has type t, recording
// an error and leaving position unchanged otherwise.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.next()
		return true
	}
	p.reportExpected(t, fmt.Sprintf("insert %s", t))
	return false
}

// ParseFile parses a whole source file into ordered declarations. It
// does not stop at the first error: it resynchronizes to the next
// declaration boundary (a top-level identifier followed by `:` or
// `=`, or `assume`, or `[`) so later declarations still surface their
// own errors (mirrors spec.md §7's "the run continues").
func ParseFile(path string, src string) (*ast.File, []error) {
	l := lexer.New(string(lexer.Normalize([]byte(src))), path)
	p := New(l)
	f := &ast.File{Path: path}
	for !p.curIs(lexer.EOF) {
		d := p.parseDecl()
		if d != nil {
			f.Decls = append(f.Decls, d)
		}
		if len(p.errors) > 0 && d == nil {
			p.resync()
		}
	}
	return f, p.errors
}

// resync skips tokens until a plausible declaration start, so one
// malformed declaration doesn't cascade into spurious errors for the
// rest of the file.
func (p *Parser) resync() {
	for !p.curIs(lexer.EOF) {
		if p.curIs(lexer.LBRACKET) || p.curIs(lexer.ASSUME) {
			return
		}
		if p.curIs(lexer.IDENT) && (p.peekIs(lexer.COLON) || p.peekIs(lexer.ASSIGN)) {
			return
		}
		p.next()
	}
}

// Errors returns the accumulated parser errors.
func (p *Parser) Errors() []error { return p.errors }
