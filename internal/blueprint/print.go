package blueprint

import (
	"strconv"
	"strings"
)

// DefaultIndent is the indent width used when none is configured.
const DefaultIndent = 4

type formatOpts struct {
	pretty bool
	indent int
}

// Format renders the document deterministically. In pretty mode maps print
// one entry per line with trailing commas; lists print inline when they
// have at most one element and one element per line otherwise. Compact mode
// (pretty=false) renders everything on one line with no trailing commas and
// is meant for equality and diagnostic display, not file output.
func (f *File) Format(pretty bool, indent int) string {
	opts := formatOpts{pretty: pretty, indent: indent}
	var sb strings.Builder
	for i, r := range f.Rules {
		if i > 0 {
			sb.WriteByte('\n')
		}
		r.format(&sb, opts, 0)
	}
	return sb.String()
}

// String renders the document in compact form.
func (f *File) String() string { return f.Format(false, DefaultIndent) }

func writeIndent(sb *strings.Builder, opts formatOpts, depth int) {
	for range opts.indent * depth {
		sb.WriteByte(' ')
	}
}

func (a *Assignment) format(sb *strings.Builder, opts formatOpts, depth int) {
	sb.WriteString(string(a.Name))
	sb.WriteString(" = ")
	a.Expr.format(sb, opts, depth)
}

func (a *CompoundAssignment) format(sb *strings.Builder, opts formatOpts, depth int) {
	sb.WriteString(string(a.Name))
	sb.WriteByte(' ')
	sb.WriteString(a.Op)
	sb.WriteByte(' ')
	a.Expr.format(sb, opts, depth)
}

func (s *Scope) format(sb *strings.Builder, opts formatOpts, depth int) {
	sb.WriteString(string(s.Name))
	sb.WriteByte(' ')
	s.Map.format(sb, opts, depth)
}

func (id Ident) format(sb *strings.Builder, _ formatOpts, _ int) {
	sb.WriteString(string(id))
}

func (s String) format(sb *strings.Builder, _ formatOpts, _ int) {
	sb.WriteString(string(s))
}

func (n Integer) format(sb *strings.Builder, _ formatOpts, _ int) {
	sb.WriteString(strconv.FormatInt(int64(n), 10))
}

func (b Bool) format(sb *strings.Builder, _ formatOpts, _ int) {
	if b {
		sb.WriteString("true")
	} else {
		sb.WriteString("false")
	}
}

func (b *BinaryOperator) format(sb *strings.Builder, opts formatOpts, depth int) {
	b.LHS.format(sb, opts, depth)
	sb.WriteByte(' ')
	sb.WriteString(b.Op)
	sb.WriteByte(' ')
	b.RHS.format(sb, opts, depth)
}

func (v *MapValue) format(sb *strings.Builder, opts formatOpts, depth int) {
	if v.Delim == DelimEquals {
		sb.WriteString(" = ")
	} else {
		sb.WriteString(": ")
	}
	v.Value.format(sb, opts, depth)
}

// Maps with entries always render one entry per line in pretty mode,
// regardless of entry count.
func (m *Map) format(sb *strings.Builder, opts formatOpts, depth int) {
	sb.WriteByte('{')
	switch {
	case len(m.Pairs) == 0:
		sb.WriteByte('}')
	case opts.pretty:
		sb.WriteByte('\n')
		for i := range m.Pairs {
			p := &m.Pairs[i]
			writeIndent(sb, opts, depth+1)
			p.Key.format(sb, opts, depth+1)
			p.Value.format(sb, opts, depth+1)
			sb.WriteString(",\n")
		}
		writeIndent(sb, opts, depth)
		sb.WriteByte('}')
	default:
		for i := range m.Pairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			p := &m.Pairs[i]
			p.Key.format(sb, opts, depth+1)
			p.Value.format(sb, opts, depth+1)
		}
		sb.WriteByte('}')
	}
}

// Lists render inline up to one element. A map element is formatted at the
// list's own depth, not one deeper, so its closing brace lines up with the
// list's brackets instead of double-indenting.
func (l *List) format(sb *strings.Builder, opts formatOpts, depth int) {
	elem := func(e Expr) {
		if _, ok := e.(*Map); ok {
			e.format(sb, opts, depth)
		} else {
			e.format(sb, opts, depth+1)
		}
	}

	sb.WriteByte('[')
	if len(l.Elems) <= 1 || !opts.pretty {
		for i, e := range l.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			elem(e)
		}
		sb.WriteByte(']')
		return
	}
	sb.WriteByte('\n')
	for _, e := range l.Elems {
		writeIndent(sb, opts, depth+1)
		elem(e)
		sb.WriteString(",\n")
	}
	writeIndent(sb, opts, depth)
	sb.WriteByte(']')
}
