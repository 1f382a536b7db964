// Package parser turns a ByteLog token stream (internal/lexer) into an
// internal/ast.Program via recursive descent, one statement per logical
// line (spec §6). Semantics are grounded on original_source/src/
// test_parser.c and test_ast.c (read for behavior, not translated): the
// resulting tree shape follows Design Notes §9, not the C tagged union.
package parser

import (
	"fmt"

	"github.com/gitrdm/bytelog/internal/ast"
	"github.com/gitrdm/bytelog/internal/lexer"
)

// Error is a parse error with source position (spec §7: "surfaced with
// line and column, aborts program load").
type Error struct {
	Line, Col int
	Msg       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse lexes and parses src into a Program, or returns the first error
// encountered (lexical or syntactic).
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		le := err.(*lexer.Error)
		return nil, &Error{Line: le.Line, Col: le.Col, Msg: le.Msg}
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t lexer.Token, format string, args ...interface{}) error {
	return &Error{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for {
		// Skip blank lines.
		for p.cur().Kind == lexer.Newline {
			p.advance()
		}
		if p.cur().Kind == lexer.EOF {
			return prog, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) expectEOL() error {
	switch p.cur().Kind {
	case lexer.Newline:
		p.advance()
		return nil
	case lexer.EOF:
		return nil
	default:
		return p.errorf(p.cur(), "expected end of line, found %s", describe(p.cur()))
	}
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	t := p.cur()
	if t.Kind != lexer.Keyword {
		return nil, p.errorf(t, "expected a statement keyword, found %s", describe(t))
	}
	switch t.Text {
	case "REL":
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &ast.RelDecl{Name: name, Line: t.Line}, nil
	case "FACT":
		return p.parseFact(t)
	case "RULE":
		return p.parseRule(t)
	case "SOLVE":
		p.advance()
		return &ast.Solve{Line: t.Line}, nil
	case "QUERY":
		return p.parseQuery(t)
	default:
		return nil, p.errorf(t, "unexpected keyword %s", t.Text)
	}
}

func (p *parser) parseFact(kw lexer.Token) (ast.Stmt, error) {
	p.advance() // FACT
	rel, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	a, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	b, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return &ast.Fact{Rel: rel, A: a, B: b, Line: kw.Line}, nil
}

func (p *parser) parseRule(kw lexer.Token) (ast.Stmt, error) {
	p.advance() // RULE
	target, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != lexer.Colon {
		return nil, p.errorf(p.cur(), "expected ':' after rule target, found %s", describe(p.cur()))
	}
	p.advance()

	var body []ast.Op
	var emitTarget string
	var emitA, emitB int
	sawEmit := false

	for {
		t := p.cur()
		if t.Kind != lexer.Keyword {
			return nil, p.errorf(t, "expected SCAN, JOIN, or EMIT, found %s", describe(t))
		}
		switch t.Text {
		case "SCAN":
			p.advance()
			rel, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			op := ast.Op{Kind: ast.ScanOp, Rel: rel}
			if p.cur().Kind == lexer.Keyword && p.cur().Text == "MATCH" {
				p.advance()
				v, err := p.expectVariable()
				if err != nil {
					return nil, err
				}
				op.HasVar = true
				op.Var = v
			}
			body = append(body, op)
		case "JOIN":
			p.advance()
			rel, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			v, err := p.expectVariable()
			if err != nil {
				return nil, err
			}
			body = append(body, ast.Op{Kind: ast.JoinOp, Rel: rel, HasVar: true, Var: v})
		case "EMIT":
			p.advance()
			rel, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			i, err := p.expectVariable()
			if err != nil {
				return nil, err
			}
			j, err := p.expectVariable()
			if err != nil {
				return nil, err
			}
			emitTarget, emitA, emitB = rel, i, j
			sawEmit = true
		default:
			return nil, p.errorf(t, "expected SCAN, JOIN, or EMIT, found %s", describe(t))
		}

		if sawEmit {
			break
		}
		if p.cur().Kind != lexer.Comma {
			return nil, p.errorf(p.cur(), "expected ',' between rule body ops, found %s", describe(p.cur()))
		}
		p.advance()
	}

	return &ast.Rule{
		Target:     target,
		Body:       body,
		EmitTarget: emitTarget,
		EmitA:      emitA,
		EmitB:      emitB,
		Line:       kw.Line,
	}, nil
}

func (p *parser) parseQuery(kw lexer.Token) (ast.Stmt, error) {
	p.advance() // QUERY
	rel, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	a, err := p.parseQueryArg()
	if err != nil {
		return nil, err
	}
	b, err := p.parseQueryArg()
	if err != nil {
		return nil, err
	}
	return &ast.Query{Rel: rel, A: a, B: b, Line: kw.Line}, nil
}

func (p *parser) parseLiteral() (ast.Literal, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.Integer:
		p.advance()
		return ast.Literal{Int: t.Int}, nil
	case lexer.Ident:
		p.advance()
		return ast.Literal{IsAtom: true, Atom: t.Text}, nil
	default:
		return ast.Literal{}, p.errorf(t, "expected an integer or atom argument, found %s", describe(t))
	}
}

func (p *parser) parseQueryArg() (ast.QueryArg, error) {
	if p.cur().Kind == lexer.Wildcard {
		p.advance()
		return ast.QueryArg{Wildcard: true}, nil
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return ast.QueryArg{}, err
	}
	return ast.QueryArg{Literal: lit}, nil
}

func (p *parser) expectIdent() (string, error) {
	t := p.cur()
	if t.Kind != lexer.Ident {
		return "", p.errorf(t, "expected an identifier, found %s", describe(t))
	}
	p.advance()
	return t.Text, nil
}

func (p *parser) expectVariable() (int, error) {
	t := p.cur()
	if t.Kind != lexer.Variable {
		return 0, p.errorf(t, "expected a $register, found %s", describe(t))
	}
	p.advance()
	return t.Int, nil
}

func describe(t lexer.Token) string {
	switch t.Kind {
	case lexer.EOF:
		return "end of input"
	case lexer.Newline:
		return "end of line"
	case lexer.Keyword:
		return fmt.Sprintf("keyword %q", t.Text)
	case lexer.Ident:
		return fmt.Sprintf("identifier %q", t.Text)
	case lexer.Variable:
		return fmt.Sprintf("$%d", t.Int)
	case lexer.Integer:
		return fmt.Sprintf("integer %d", t.Int)
	case lexer.Wildcard:
		return "'?'"
	case lexer.Colon:
		return "':'"
	case lexer.Comma:
		return "','"
	default:
		return "token"
	}
}
