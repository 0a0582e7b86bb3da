// Package token defines the token kinds produced by the blueprint lexer.
package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	EOF Kind = iota
	Invalid
	Ident
	IntLit
	BoolLit
	StringLit
	LBracket
	RBracket
	LBrace
	RBrace
	Colon
	Comma
	Assign
	Plus
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Invalid:
		return "Invalid"
	case Ident:
		return "Ident"
	case IntLit:
		return "IntLit"
	case BoolLit:
		return "BoolLit"
	case StringLit:
		return "StringLit"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case Colon:
		return "Colon"
	case Comma:
		return "Comma"
	case Assign:
		return "Assign"
	case Plus:
		return "Plus"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Token is a single lexed token. Text is the verbatim source slice (string
// literals keep their quotes); Line is the 1-based line the token starts on,
// tracked for diagnostics only.
type Token struct {
	Kind Kind
	Text string
	Line int
}
