// Package blueprint parses Android soong blueprint files: a JSON-like
// declarative configuration dialect with named scopes, ordered maps, lists,
// and an unevaluated `+` merge operator.
//
// Unlike the makefile parser, re-emission here is always a fresh
// pretty-print: comments are dropped during lexing and formatting is
// normalized, so round-tripping is structural rather than byte-exact.
package blueprint

import (
	"fmt"
	"unicode/utf8"

	"buildtrim/internal/blueprint/token"
)

// Lexer tokenizes blueprint source. Horizontal whitespace and both comment
// styles are skipped; newlines only advance the line counter used in
// diagnostics.
type Lexer struct {
	src  string
	off  int
	line int
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Next returns the next significant token, or EOF once input is exhausted.
// A byte matching no rule yields a LexError.
func (lx *Lexer) Next() (token.Token, error) {
	if err := lx.skipTrivia(); err != nil {
		return token.Token{Kind: token.Invalid, Line: lx.line}, err
	}
	if lx.off >= len(lx.src) {
		return token.Token{Kind: token.EOF, Line: lx.line}, nil
	}

	ch := lx.src[lx.off]
	switch {
	case isIdentStart(ch):
		return lx.scanIdent(), nil
	case isDigit(ch):
		return lx.scanInteger(), nil
	case ch == '"':
		return lx.scanString()
	}

	if kind, ok := punctKind(ch); ok {
		tok := token.Token{Kind: kind, Text: lx.src[lx.off : lx.off+1], Line: lx.line}
		lx.off++
		return tok, nil
	}

	r, _ := utf8.DecodeRuneInString(lx.src[lx.off:])
	return token.Token{Kind: token.Invalid, Line: lx.line},
		&LexError{Line: lx.line, Msg: fmt.Sprintf("illegal character %q", r)}
}

// Tokenize lexes the whole input, excluding the trailing EOF token.
func Tokenize(src string) ([]token.Token, error) {
	lx := NewLexer(src)
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// skipTrivia consumes whitespace and comments up to the next token.
func (lx *Lexer) skipTrivia() error {
	for lx.off < len(lx.src) {
		switch lx.src[lx.off] {
		case ' ', '\t', '\r':
			lx.off++
		case '\n':
			lx.line++
			lx.off++
		case '/':
			if lx.off+1 < len(lx.src) && lx.src[lx.off+1] == '/' {
				lx.skipLineComment()
				continue
			}
			if lx.off+1 < len(lx.src) && lx.src[lx.off+1] == '*' {
				if err := lx.skipBlockComment(); err != nil {
					return err
				}
				continue
			}
			return &LexError{Line: lx.line, Msg: "illegal character '/'"}
		default:
			return nil
		}
	}
	return nil
}

func (lx *Lexer) skipLineComment() {
	for lx.off < len(lx.src) && lx.src[lx.off] != '\n' {
		lx.off++
	}
}

func (lx *Lexer) skipBlockComment() error {
	start := lx.line
	lx.off += 2
	for lx.off < len(lx.src) {
		switch {
		case lx.src[lx.off] == '*' && lx.off+1 < len(lx.src) && lx.src[lx.off+1] == '/':
			lx.off += 2
			return nil
		case lx.src[lx.off] == '\n':
			lx.line++
			lx.off++
		default:
			lx.off++
		}
	}
	return &LexError{Line: start, Msg: "unterminated block comment"}
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.off
	for lx.off < len(lx.src) && isIdentContinue(lx.src[lx.off]) {
		lx.off++
	}
	text := lx.src[start:lx.off]
	kind := token.Ident
	if text == "true" || text == "false" {
		kind = token.BoolLit
	}
	return token.Token{Kind: kind, Text: text, Line: lx.line}
}

func (lx *Lexer) scanInteger() token.Token {
	start := lx.off
	for lx.off < len(lx.src) && isDigit(lx.src[lx.off]) {
		lx.off++
	}
	return token.Token{Kind: token.IntLit, Text: lx.src[start:lx.off], Line: lx.line}
}

// scanString scans a double-quoted string literal following the CSS2.1
// string grammar: backslash escapes, unicode escapes of up to six hex
// digits with one optional trailing whitespace character, and
// escaped-newline continuations. Raw newlines are not allowed. The token
// text keeps the surrounding quotes.
func (lx *Lexer) scanString() (token.Token, error) {
	start := lx.off
	startLine := lx.line
	lx.off++ // opening quote
	for lx.off < len(lx.src) {
		switch ch := lx.src[lx.off]; ch {
		case '"':
			lx.off++
			return token.Token{Kind: token.StringLit, Text: lx.src[start:lx.off], Line: startLine}, nil
		case '\\':
			lx.off++
			lx.scanEscape()
		case '\n', '\r', '\f':
			return token.Token{Kind: token.Invalid, Line: lx.line},
				&LexError{Line: lx.line, Msg: "newline in string literal"}
		default:
			lx.off++
		}
	}
	return token.Token{Kind: token.Invalid, Line: startLine},
		&LexError{Line: startLine, Msg: "unterminated string literal"}
}

// scanEscape consumes the escape body after a backslash.
func (lx *Lexer) scanEscape() {
	if lx.off >= len(lx.src) {
		return
	}
	if lx.consumeNewline() {
		return // line continuation
	}
	if isHex(lx.src[lx.off]) {
		for n := 0; n < 6 && lx.off < len(lx.src) && isHex(lx.src[lx.off]); n++ {
			lx.off++
		}
		// one whitespace character may terminate the escape
		if lx.off < len(lx.src) {
			switch lx.src[lx.off] {
			case ' ', '\t':
				lx.off++
			default:
				lx.consumeNewline()
			}
		}
		return
	}
	_, size := utf8.DecodeRuneInString(lx.src[lx.off:])
	lx.off += size
}

// consumeNewline consumes one \r\n, \n, \r, or \f, updating the line count.
func (lx *Lexer) consumeNewline() bool {
	switch lx.src[lx.off] {
	case '\r':
		lx.off++
		if lx.off < len(lx.src) && lx.src[lx.off] == '\n' {
			lx.off++
		}
	case '\n', '\f':
		lx.off++
	default:
		return false
	}
	lx.line++
	return true
}

func punctKind(ch byte) (token.Kind, bool) {
	switch ch {
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case ':':
		return token.Colon, true
	case ',':
		return token.Comma, true
	case '=':
		return token.Assign, true
	case '+':
		return token.Plus, true
	default:
		return token.Invalid, false
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

// isHex is lowercase-only, as in the CSS2.1 grammar this string syntax
// follows; \A is a plain character escape, not a unicode one.
func isHex(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f')
}
