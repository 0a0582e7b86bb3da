package blueprint

import "testing"

func TestFileFilter(t *testing.T) {
	src := `cc_library {
    name: "libfoo",
}
cc_test {
    name: "libfoo_test",
}
cc_benchmark {
    name: "libfoo_benchmark",
}
subdirs = ["src"]
`
	f := mustParse(t, src)
	f.Filter(func(r Rule) bool {
		s, ok := r.(*Scope)
		return !ok || !s.IsDev()
	})
	if len(f.Rules) != 2 {
		t.Fatalf("got %d rules, want 2: %s", len(f.Rules), f.String())
	}
	if s, ok := f.Rules[0].(*Scope); !ok || s.Name != "cc_library" {
		t.Errorf("rule 0 = %#v", f.Rules[0])
	}
	if _, ok := f.Rules[1].(*Assignment); !ok {
		t.Errorf("rule 1 = %#v", f.Rules[1])
	}
}

func TestListFilter(t *testing.T) {
	f := mustParse(t, `subdirs = ["src", "tests", "benchmarks", "include"]`)
	l := f.Rules[0].(*Assignment).Expr.(*List)
	l.Filter(func(e Expr) bool {
		s, ok := e.(String)
		return !ok || (s.Value() != "tests" && s.Value() != "benchmarks")
	})
	if got := f.String(); got != `subdirs = ["src", "include"]` {
		t.Errorf("got %s", got)
	}
}

func TestMapFilter(t *testing.T) {
	f := mustParse(t, `m { keep: 1, drop: 2, also: 3 }`)
	m := f.Rules[0].(*Scope).Map
	m.Filter(func(key Ident, _ *MapValue) bool { return key != "drop" })
	if len(m.Pairs) != 2 || m.Pairs[0].Key != "keep" || m.Pairs[1].Key != "also" {
		t.Errorf("pairs = %#v", m.Pairs)
	}
}

func TestMapRecurse(t *testing.T) {
	src := `m {
    a: 1,
    nested: {
        b: 2,
        deeper: {
            c: 3,
        },
    },
    list: [{d: 4}],
}`
	m := mustParse(t, src).Rules[0].(*Scope).Map

	type seen struct {
		key   string
		depth int
	}
	var got []seen
	for e := range m.Recurse(-1) {
		got = append(got, seen{string(e.Key), e.Depth})
	}
	// maps inside lists are not descended into, so d never appears
	want := []seen{
		{"a", 1}, {"nested", 1}, {"b", 2}, {"deeper", 2}, {"c", 3}, {"list", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}

	var shallow []string
	for e := range m.Recurse(1) {
		shallow = append(shallow, string(e.Key))
	}
	if len(shallow) != 3 {
		t.Errorf("depth 1 yielded %v, want the three top entries", shallow)
	}
}

func TestMapRecurseParent(t *testing.T) {
	m := mustParse(t, `m { nested: { b: 2 } }`).Rules[0].(*Scope).Map
	for e := range m.Recurse(-1) {
		if e.Key == "b" {
			if e.Parent == m {
				t.Error("b's parent is the root map, want the nested map")
			}
			if e.Parent.Get("b") == nil {
				t.Error("parent does not contain b")
			}
		}
	}
}

func TestScopeClassification(t *testing.T) {
	tests := []struct {
		src    string
		isDev  bool
		reason string
	}{
		{`cc_test { name: "foo" }`, true, "test module type"},
		{`cc_benchmark { name: "foo" }`, true, "benchmark module type"},
		{`cc_library { name: "libfoo_test" }`, true, "test module name"},
		{`cc_library { name: "libfoo" }`, false, "ordinary module"},
		{`cc_defaults { name: "lib-non-test-defaults" }`, false, "explicit non-test name"},
		{`cc_library { name: "py2-c-module-unittest" }`, false, "bundled python test module"},
		{`genrule { name: "art-check-debug-apex-gen" }`, true, "art check machinery"},
		{`cc_library { name: "gbenchmarks" }`, false, "benchmark needs a word boundary"},
	}
	for _, tt := range tests {
		s := mustParse(t, tt.src).Rules[0].(*Scope)
		if got := s.IsDev(); got != tt.isDev {
			t.Errorf("IsDev(%s) = %v, want %v (%s)", tt.src, got, tt.isDev, tt.reason)
		}
	}
}
