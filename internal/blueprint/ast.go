package blueprint

import (
	"strings"

	"buildtrim/internal/classify"
)

// File is a parsed blueprint document: an ordered sequence of rules.
type File struct {
	Rules []Rule
}

// Rule is a top-level declaration: an assignment, a compound assignment, or
// a scope. The set of implementations is closed.
type Rule interface {
	format(sb *strings.Builder, opts formatOpts, depth int)
	rule()
}

// Expr is a blueprint expression. The set of implementations is closed:
// Ident, String, Integer, Bool, *Map, *List, and *BinaryOperator.
type Expr interface {
	format(sb *strings.Builder, opts formatOpts, depth int)
	expr()
}

// Assignment is `name = expr`.
type Assignment struct {
	Name Ident
	Expr Expr
}

func (*Assignment) rule() {}

// CompoundAssignment is `name += expr`. The operator is stored literally
// and never evaluated.
type CompoundAssignment struct {
	Name Ident
	Op   string
	Expr Expr
}

func (*CompoundAssignment) rule() {}

// Scope is a named declaration block, `name { ... }`. Its body is always a
// map.
type Scope struct {
	Name Ident
	Map  *Map
}

func (*Scope) rule() {}

// IsTest reports whether the scope declares a test module, either by its
// type name or by its `name` entry.
func (s *Scope) IsTest() bool { return classify.IsTest(string(s.Name)) || s.Map.IsTest() }

// IsBenchmark reports whether the scope declares a benchmark module.
func (s *Scope) IsBenchmark() bool {
	return classify.IsBenchmark(string(s.Name)) || s.Map.IsBenchmark()
}

// IsArtCheck reports whether the scope belongs to the ART boot-image
// checking machinery, which downstream consumers prune alongside tests.
func (s *Scope) IsArtCheck() bool {
	return strings.Contains(strings.ToLower(string(s.Name)), "art-check") || s.Map.IsArtCheck()
}

// IsDev reports whether the scope declares a development-only module.
func (s *Scope) IsDev() bool { return s.IsArtCheck() || s.IsTest() || s.IsBenchmark() }

// Ident is a variable reference or bare name. It carries no magic: whether
// it resolves to anything is not this package's concern.
type Ident string

func (Ident) expr() {}

// String is a quoted string literal. The stored text keeps its quotes so
// re-emission is verbatim; Value returns the unquoted contents.
type String string

func (String) expr() {}

// Value returns the string without its surrounding quotes. Escapes are not
// interpreted; consumers only inspect and prune, never evaluate.
func (s String) Value() string {
	if len(s) >= 2 {
		return string(s[1 : len(s)-1])
	}
	return string(s)
}

// StrOp applies a text predicate to the unquoted value.
func (s String) StrOp(cmp func(string) bool) bool { return cmp(s.Value()) }

// Integer is a decimal integer literal.
type Integer int64

func (Integer) expr() {}

// Bool is a boolean literal.
type Bool bool

func (Bool) expr() {}

// BinaryOperator is an unevaluated `lhs + rhs`. The operands are recorded
// verbatim for re-emission and predicate inspection; no arithmetic, string
// concatenation, or map merging is ever performed.
type BinaryOperator struct {
	LHS Expr
	Op  string
	RHS Expr
}

func (*BinaryOperator) expr() {}

// StrOp reports whether either string operand satisfies the predicate.
func (b *BinaryOperator) StrOp(cmp func(string) bool) bool {
	if l, ok := b.LHS.(String); ok && l.StrOp(cmp) {
		return true
	}
	r, ok := b.RHS.(String)
	return ok && r.StrOp(cmp)
}

// Map is an insertion-ordered mapping from identifier keys to values.
type Map struct {
	Pairs []MapPair
}

func (*Map) expr() {}

// MapPair is one key/value entry.
type MapPair struct {
	Key   Ident
	Value MapValue
}

// MapValue pairs an entry's value with the delimiter used in the source
// (`:` or `=`). The two are semantically interchangeable; the delimiter is
// kept only so re-emission matches the author's choice.
type MapValue struct {
	Delim Delim
	Value Expr
}

// StrOp applies a text predicate to the wrapped value.
func (v *MapValue) StrOp(cmp func(string) bool) bool {
	switch e := v.Value.(type) {
	case String:
		return e.StrOp(cmp)
	case *BinaryOperator:
		return e.StrOp(cmp)
	default:
		return false
	}
}

// Delim is a map entry's key/value delimiter.
type Delim byte

const (
	DelimColon  Delim = ':'
	DelimEquals Delim = '='
)

// Get returns the value of the entry with the given key, or nil.
func (m *Map) Get(key string) *MapValue {
	for i := range m.Pairs {
		if string(m.Pairs[i].Key) == key {
			return &m.Pairs[i].Value
		}
	}
	return nil
}

// entryName returns the unquoted `name` entry when present and a string.
func (m *Map) entryName() (string, bool) {
	v := m.Get("name")
	if v == nil {
		return "", false
	}
	s, ok := v.Value.(String)
	if !ok {
		return "", false
	}
	return s.Value(), true
}

// IsTest reports whether the map's name entry classifies as a test.
// py2-c-module-* test modules are exempt: they are linked into the final
// binary and must not be pruned.
func (m *Map) IsTest() bool {
	name, ok := m.entryName()
	if !ok {
		return false
	}
	lower := strings.ToLower(name)
	return classify.IsTest(lower) && !strings.Contains(lower, "py2-c-module")
}

// IsBenchmark reports whether the map's name entry classifies as a benchmark.
func (m *Map) IsBenchmark() bool {
	name, ok := m.entryName()
	return ok && classify.IsBenchmark(name)
}

// IsArtCheck reports whether the map's name entry contains "art-check".
func (m *Map) IsArtCheck() bool {
	name, ok := m.entryName()
	return ok && strings.Contains(strings.ToLower(name), "art-check")
}

// IsDev reports whether the map names a test or benchmark module.
func (m *Map) IsDev() bool { return m.IsTest() || m.IsBenchmark() }

// List is an ordered sequence of elements. The grammar restricts elements
// to strings, identifiers, maps, or a single `+` of two such operands.
type List struct {
	Elems []Expr
}

func (*List) expr() {}
