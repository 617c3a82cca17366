package parser

import (
	"fmt"

	"github.com/sunholo/minitt/internal/errors"
	"github.com/sunholo/minitt/internal/lexer"
)

// report wraps a PAR001 structured report at the current position
// (spec.md §7 kind 1).
func (p *Parser) report(message string) {
	p.errors = append(p.errors, errors.Wrap(errors.NewParseError(message, p.curPos())))
}

// reportExpected is a convenience helper for "expected X, got Y" errors.
func (p *Parser) reportExpected(expected lexer.TokenType, _ string) {
	p.report(fmt.Sprintf("expected %s, got %s", expected, p.curToken.Type))
}

func (p *Parser) noPrefixParseFnError(t lexer.TokenType) {
	p.report(fmt.Sprintf("unexpected token in expression: %s", t))
}
