package blueprint

import (
	"fmt"
	"strconv"

	"buildtrim/internal/blueprint/token"
)

// Parse builds the AST for one blueprint document. The grammar has a single
// precedence level (left-associative `+`), so plain recursive descent is
// enough:
//
//	document  := rule*
//	rule      := ident '=' expr | ident '+=' expr | ident map
//	map       := '{' (pair (',' pair)* ','?)? '}'
//	pair      := ident (':'|'=') expr
//	list      := '[' (item (',' item)* ','?)? ']'
//	item      := operand ('+' operand)?        operand := string|ident|map
//	expr      := primary ('+' primary)*
//
// The parser accepts some subtly invalid documents (it does not validate
// types); its contract is to handle all correct input and re-emit it as
// correct output.
func Parse(src string) (*File, error) {
	p := &parser{lx: NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	f := &File{}
	for p.tok.Kind != token.EOF {
		r, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		f.Rules = append(f.Rules, r)
	}
	return f, nil
}

type parser struct {
	lx  *Lexer
	tok token.Token
}

func (p *parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseRule() (Rule, error) {
	if p.tok.Kind != token.Ident {
		return nil, p.unexpected("a variable or module type name")
	}
	name := Ident(p.tok.Text)
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch p.tok.Kind {
	case token.Assign:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Assignment{Name: name, Expr: expr}, nil

	case token.Plus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind != token.Assign {
			return nil, p.unexpected("'=' after '+'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &CompoundAssignment{Name: name, Op: "+=", Expr: expr}, nil

	case token.LBrace:
		m, err := p.parseMap()
		if err != nil {
			return nil, err
		}
		return &Scope{Name: name, Map: m}, nil

	default:
		return nil, p.unexpected("'=', '+=', or '{'")
	}
}

func (p *parser) parseExpr() (Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == token.Plus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOperator{LHS: lhs, Op: "+", RHS: rhs}
	}
	return lhs, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.tok.Kind {
	case token.Ident:
		id := Ident(p.tok.Text)
		return id, p.advance()
	case token.StringLit:
		s := String(p.tok.Text)
		return s, p.advance()
	case token.IntLit:
		n, err := strconv.ParseInt(p.tok.Text, 10, 64)
		if err != nil {
			return nil, &ParseError{Line: p.tok.Line, Msg: fmt.Sprintf("integer literal %s out of range", p.tok.Text)}
		}
		return Integer(n), p.advance()
	case token.BoolLit:
		b := Bool(p.tok.Text == "true")
		return b, p.advance()
	case token.LBrace:
		return p.parseMap()
	case token.LBracket:
		return p.parseList()
	default:
		return nil, p.unexpected("an expression")
	}
}

func (p *parser) parseMap() (*Map, error) {
	// caller guarantees '{'
	if err := p.advance(); err != nil {
		return nil, err
	}
	m := &Map{}
	if p.tok.Kind == token.RBrace {
		return m, p.advance()
	}
	for {
		if p.tok.Kind != token.Ident {
			return nil, p.unexpected("a map key")
		}
		key := Ident(p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}

		var delim Delim
		switch p.tok.Kind {
		case token.Colon:
			delim = DelimColon
		case token.Assign:
			delim = DelimEquals
		default:
			return nil, p.unexpected("':' or '=' after map key")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		m.Pairs = append(m.Pairs, MapPair{Key: key, Value: MapValue{Delim: delim, Value: value}})

		switch p.tok.Kind {
		case token.Comma:
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind == token.RBrace { // trailing comma
				return m, p.advance()
			}
		case token.RBrace:
			return m, p.advance()
		default:
			return nil, p.unexpected("',' or '}'")
		}
	}
}

func (p *parser) parseList() (*List, error) {
	// caller guarantees '['
	if err := p.advance(); err != nil {
		return nil, err
	}
	l := &List{}
	if p.tok.Kind == token.RBracket {
		return l, p.advance()
	}
	for {
		item, err := p.parseListItem()
		if err != nil {
			return nil, err
		}
		l.Elems = append(l.Elems, item)

		switch p.tok.Kind {
		case token.Comma:
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind == token.RBracket { // trailing comma
				return l, p.advance()
			}
		case token.RBracket:
			return l, p.advance()
		default:
			return nil, p.unexpected("',' or ']'")
		}
	}
}

// parseListItem parses one list element: a string, identifier, or map,
// optionally combined once with '+'. The grammar does not allow deeper '+'
// nesting inside list items.
func (p *parser) parseListItem() (Expr, error) {
	lhs, err := p.parseListOperand()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != token.Plus {
		return lhs, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseListOperand()
	if err != nil {
		return nil, err
	}
	return &BinaryOperator{LHS: lhs, Op: "+", RHS: rhs}, nil
}

func (p *parser) parseListOperand() (Expr, error) {
	switch p.tok.Kind {
	case token.StringLit:
		s := String(p.tok.Text)
		return s, p.advance()
	case token.Ident:
		id := Ident(p.tok.Text)
		return id, p.advance()
	case token.LBrace:
		return p.parseMap()
	default:
		return nil, p.unexpected("a string, identifier, or map")
	}
}

func (p *parser) unexpected(want string) error {
	got := "end of input"
	if p.tok.Kind != token.EOF {
		got = fmt.Sprintf("%q", p.tok.Text)
	}
	return &ParseError{Line: p.tok.Line, Msg: fmt.Sprintf("unexpected %s, expected %s", got, want)}
}
