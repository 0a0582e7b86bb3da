package blueprint

import "fmt"

// LexError reports an input byte sequence the lexer cannot tokenize. It is
// fatal for the document being parsed; other documents are unaffected.
type LexError struct {
	Line int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d: %s", e.Line, e.Msg)
}

// ParseError reports a token sequence that matches no grammar production.
// It is fatal for the document being parsed.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}
