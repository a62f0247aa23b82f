// Package parser implements a recursive-descent parser over the
// micro-Python token stream, producing the ast.Program the codegen
// backends consume. Grounded in the original implementation's
// parser::parser module, including its block-termination-by-keyword-
// lookahead behavior (this language has no real indentation
// sensitivity; see package ast and §12.2 of the project's expanded
// specification for why that's preserved rather than fixed).
package parser

import (
	"github.com/lennart-voss/mpy8/internal/ast"
	"github.com/lennart-voss/mpy8/internal/compileerr"
	"github.com/lennart-voss/mpy8/internal/lexer"
	"github.com/lennart-voss/mpy8/internal/token"
)

// Parse tokenizes and parses source into a Program.
func Parse(source string) (ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return ast.Program{}, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses an already-tokenized stream into a Program.
func ParseTokens(tokens []token.Token) (ast.Program, error) {
	p := &parser{tokens: tokens}
	var statements []ast.Statement
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return ast.Program{}, err
		}
		if stmt != nil {
			statements = append(statements, *stmt)
		}
		p.consumeNewlines()
	}
	return ast.Program{Statements: statements}, nil
}

type parser struct {
	tokens []token.Token
	pos    int
}

func (p *parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) peekKind() token.Kind {
	if t := p.peek(); t != nil {
		return t.Kind
	}
	return token.EOF
}

func (p *parser) lookahead(n int) *token.Token {
	if p.pos+n >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos+n]
}

func (p *parser) advance() *token.Token {
	t := p.peek()
	if t != nil {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool {
	return p.peekKind() == token.EOF
}

func (p *parser) currentPos() (line, column int) {
	if t := p.peek(); t != nil {
		return t.Pos.Line, t.Pos.Column
	}
	return 1, 1
}

func (p *parser) expect(kind token.Kind) (*token.Token, error) {
	line, col := p.currentPos()
	t := p.advance()
	if t == nil {
		return nil, compileerr.At(compileerr.KindSyntax, line, col, "unexpected end of file")
	}
	if t.Kind != kind {
		return nil, compileerr.At(compileerr.KindSyntax, t.Pos.Line, t.Pos.Column, "unexpected token %s, expected %s", t.Kind, kind)
	}
	return t, nil
}

func (p *parser) consumeNewlines() {
	for p.peekKind() == token.Newline {
		p.advance()
	}
}

// parseStatement returns nil, nil for tokens that produce no AST node
// (bare newlines, pass, or anything the grammar doesn't recognize —
// the original's permissive `_ => { self.advance(); Ok(None) }`
// recovery, preserved for parity rather than made strict).
func (p *parser) parseStatement() (*ast.Statement, error) {
	switch p.peekKind() {
	case token.Identifier:
		name := p.peek().Ident
		return p.parseAssignmentOrCall(name)
	case token.Newline, token.Pass:
		p.advance()
		return nil, nil
	case token.While:
		return p.parseWhile()
	case token.For:
		return p.parseFor()
	default:
		p.advance()
		return nil, nil
	}
}

func (p *parser) parseAssignmentOrCall(name string) (*ast.Statement, error) {
	p.advance() // identifier

	switch p.peekKind() {
	case token.Assign:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Statement{Kind: ast.Assign, AssignTarget: name, AssignValue: value}, nil
	case token.LParen:
		return p.parseFunctionCall(name)
	default:
		line, col := p.currentPos()
		return nil, compileerr.At(compileerr.KindSyntax, line, col, "expected '=' or '(' after identifier %q", name)
	}
}

func (p *parser) parseFunctionCall(name string) (*ast.Statement, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	switch name {
	case "clear":
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.Statement{Kind: ast.ClearScreen}, nil
	case "print":
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Comma); err != nil {
			return nil, err
		}
		y, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Comma); err != nil {
			return nil, err
		}
		line, col := p.currentPos()
		charTok := p.advance()
		if charTok == nil || charTok.Kind != token.CharLiteral {
			return nil, compileerr.At(compileerr.KindSyntax, line, col, "expected a character literal")
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.Statement{Kind: ast.Print, PrintX: x, PrintY: y, PrintChar: charTok.CharValue}, nil
	case "range":
		line, col := p.currentPos()
		return nil, compileerr.At(compileerr.KindSyntax, line, col, "range() can only be used in for loops")
	default:
		line, col := p.currentPos()
		return nil, compileerr.At(compileerr.KindSyntax, line, col, "unknown function: %s", name)
	}
}

func (p *parser) parseExpression() (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return ast.Expression{}, err
	}

	for {
		switch p.peekKind() {
		case token.Plus:
			p.advance()
			right, err := p.parsePrimary()
			if err != nil {
				return ast.Expression{}, err
			}
			left = ast.BinaryOpExpr(left, ast.Add, right)
		case token.Minus:
			p.advance()
			right, err := p.parsePrimary()
			if err != nil {
				return ast.Expression{}, err
			}
			left = ast.BinaryOpExpr(left, ast.Subtract, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	line, col := p.currentPos()
	t := p.advance()
	if t == nil {
		return ast.Expression{}, compileerr.At(compileerr.KindSyntax, line, col, "unexpected end of file")
	}

	switch t.Kind {
	case token.Number:
		return ast.NumberExpr(t.NumberValue), nil
	case token.Identifier:
		return ast.VariableExpr(t.Ident), nil
	case token.LParen:
		expr, err := p.parseExpression()
		if err != nil {
			return ast.Expression{}, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return ast.Expression{}, err
		}
		return expr, nil
	default:
		return ast.Expression{}, compileerr.At(compileerr.KindSyntax, t.Pos.Line, t.Pos.Column, "unexpected token %s, expected number, variable, or '('", t.Kind)
	}
}

func (p *parser) parseWhile() (*ast.Statement, error) {
	p.advance() // while
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	p.consumeNewlines()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Statement{Kind: ast.While, Condition: cond, Then: body}, nil
}

func (p *parser) parseFor() (*ast.Statement, error) {
	p.advance() // for

	line, col := p.currentPos()
	nameTok := p.advance()
	if nameTok == nil || nameTok.Kind != token.Identifier {
		return nil, compileerr.At(compileerr.KindSyntax, line, col, "expected identifier after 'for'")
	}
	variable := nameTok.Ident

	if _, err := p.expect(token.In); err != nil {
		return nil, err
	}

	line, col = p.currentPos()
	rangeTok := p.advance()
	if rangeTok == nil || rangeTok.Kind != token.Identifier || rangeTok.Ident != "range" {
		return nil, compileerr.At(compileerr.KindSyntax, line, col, "expected 'range' after 'in'")
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	start, end, err := p.parseRangeArguments()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	p.consumeNewlines()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Statement{Kind: ast.For, ForVariable: variable, ForStart: start, ForEnd: end, Then: body}, nil
}

// parseRangeArguments desugars single-argument range(n) to (0, n),
// matching the original's parse_range_arguments.
func (p *parser) parseRangeArguments() (start, end ast.Expression, err error) {
	first, err := p.parseExpression()
	if err != nil {
		return ast.Expression{}, ast.Expression{}, err
	}

	if p.peekKind() == token.Comma {
		p.advance()
		second, err := p.parseExpression()
		if err != nil {
			return ast.Expression{}, ast.Expression{}, err
		}
		return first, second, nil
	}

	return ast.NumberExpr(0), first, nil
}

func (p *parser) parseCondition() (ast.Condition, error) {
	switch p.peekKind() {
	case token.True:
		p.advance()
		return ast.Condition{Kind: ast.CondTrue}, nil
	case token.Identifier, token.Number:
		left, err := p.parseExpression()
		if err != nil {
			return ast.Condition{}, err
		}

		line, col := p.currentPos()
		opTok := p.advance()
		if opTok == nil {
			return ast.Condition{}, compileerr.At(compileerr.KindSyntax, line, col, "unexpected end of file")
		}

		var kind ast.ConditionKind
		switch opTok.Kind {
		case token.Equal:
			kind = ast.CondEqual
		case token.NotEqual:
			kind = ast.CondNotEqual
		case token.Greater:
			kind = ast.CondGreater
		case token.Less:
			kind = ast.CondLess
		default:
			return ast.Condition{}, compileerr.At(compileerr.KindSyntax, opTok.Pos.Line, opTok.Pos.Column,
				"unexpected token %s, expected a comparison operator (==, !=, >, <)", opTok.Kind)
		}

		right, err := p.parseExpression()
		if err != nil {
			return ast.Condition{}, err
		}
		return ast.Condition{Kind: kind, Left: left, Right: right}, nil
	default:
		line, col := p.currentPos()
		return ast.Condition{}, compileerr.At(compileerr.KindSyntax, line, col, "expected a condition")
	}
}

// parseBlock consumes statements until the next non-newline token
// starts a new top-level construct, mirroring the original's
// parse_block keyword-lookahead block termination.
func (p *parser) parseBlock() ([]ast.Statement, error) {
	var body []ast.Statement

	for !p.atEnd() {
		switch p.peekKind() {
		case token.While, token.If, token.Def:
			return body, nil
		case token.Newline:
			if next := p.lookahead(1); next != nil {
				switch next.Kind {
				case token.While, token.If, token.Def, token.For:
					return body, nil
				}
			}
			p.advance()
			continue
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, *stmt)
		} else {
			return body, nil
		}
	}

	return body, nil
}
