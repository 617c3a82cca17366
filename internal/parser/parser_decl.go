package parser

import (
	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/lexer"
)

// parseDecl parses one top-level declaration (spec.md §6):
//
//	[tag]...
//	name : Type = body
//	name = body
//	assume name : Type
func (p *Parser) parseDecl() *ast.Decl {
	var tags []string
	for p.curIs(lexer.LBRACKET) {
		p.next()
		tags = append(tags, p.curToken.Literal)
		p.expect(lexer.IDENT)
		p.expect(lexer.RBRACKET)
	}

	pos := p.curPos()

	if p.curIs(lexer.ASSUME) {
		p.next()
		name := p.curToken.Literal
		if !p.expect(lexer.IDENT) {
			return nil
		}
		if !p.expect(lexer.COLON) {
			return nil
		}
		ty := p.parseExpr()
		return &ast.Decl{Name: name, Type: ty, Assume: true, Tags: tags, Pos: pos}
	}

	name := p.curToken.Literal
	if !p.expect(lexer.IDENT) {
		return nil
	}

	var ty ast.Raw
	if p.curIs(lexer.COLON) {
		p.next()
		ty = p.parseExpr()
	}
	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	return &ast.Decl{Name: name, Type: ty, Body: body, Tags: tags, Pos: pos}
}
