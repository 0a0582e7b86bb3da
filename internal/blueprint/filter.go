package blueprint

import "iter"

// Filter keeps, in place and in order, only the rules satisfying keep.
func (f *File) Filter(keep func(Rule) bool) {
	kept := f.Rules[:0]
	for _, r := range f.Rules {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	f.Rules = kept
}

// Filter keeps, in place and in order, only the entries satisfying keep.
func (m *Map) Filter(keep func(Ident, *MapValue) bool) {
	kept := m.Pairs[:0]
	for i := range m.Pairs {
		if keep(m.Pairs[i].Key, &m.Pairs[i].Value) {
			kept = append(kept, m.Pairs[i])
		}
	}
	m.Pairs = kept
}

// Filter keeps, in place and in order, only the elements satisfying keep.
func (l *List) Filter(keep func(Expr) bool) {
	kept := l.Elems[:0]
	for _, e := range l.Elems {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	l.Elems = kept
}

// MapEntry is one key/value pair seen during a recursive map walk, with the
// depth it was found at (1 for the receiver's own entries) and the map that
// directly holds it.
type MapEntry struct {
	Key    Ident
	Value  *MapValue
	Depth  int
	Parent *Map
}

// Recurse walks the map's entries and those of every nested map (lists are
// not descended into), pre-order, up to maxDepth levels; a negative
// maxDepth means unbounded. Used to find dependency-list fields nested
// arbitrarily deep inside a scope.
func (m *Map) Recurse(maxDepth int) iter.Seq[MapEntry] {
	return func(yield func(MapEntry) bool) {
		m.recurse(maxDepth, 0, yield)
	}
}

func (m *Map) recurse(maxDepth, depth int, yield func(MapEntry) bool) bool {
	if depth == maxDepth {
		return true
	}
	for i := range m.Pairs {
		p := &m.Pairs[i]
		if !yield(MapEntry{Key: p.Key, Value: &p.Value, Depth: depth + 1, Parent: m}) {
			return false
		}
		if sub, ok := p.Value.Value.(*Map); ok {
			if !sub.recurse(maxDepth, depth+1, yield) {
				return false
			}
		}
	}
	return true
}
