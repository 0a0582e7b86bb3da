package driver

import (
	"strings"

	"fortio.org/safecast"

	"buildtrim/internal/blueprint"
	"buildtrim/internal/config"
	"buildtrim/internal/makefile"
)

// RewriteBlueprint parses blueprint source, removes development-only
// content, and pretty-prints the result:
//
//   - scopes declaring test, benchmark, or art-check modules are dropped
//   - entries of `subdirs` assignments matching the configured fragments
//     are removed
//   - inside remaining scopes, `testSrcs` lists are emptied and entries of
//     every other list matching the configured dependency fragments are
//     removed
func RewriteBlueprint(src string, cfg config.Config) (string, error) {
	f, err := blueprint.Parse(src)
	if err != nil {
		return "", err
	}

	f.Filter(func(r blueprint.Rule) bool {
		s, ok := r.(*blueprint.Scope)
		return !ok || !s.IsDev()
	})

	for _, r := range f.Rules {
		if l := subdirsList(r); l != nil {
			filterList(l, cfg.Remove.Subdirs)
		}
		m := ruleMap(r)
		if m == nil {
			continue
		}
		for entry := range m.Recurse(-1) {
			l, ok := entry.Value.Value.(*blueprint.List)
			if !ok {
				continue
			}
			if entry.Key == "testSrcs" {
				l.Elems = nil
				continue
			}
			filterList(l, cfg.Remove.Deps)
		}
	}

	indent, err := safecast.Conv[int](cfg.Output.Indent)
	if err != nil {
		return "", err
	}
	return f.Format(true, indent) + "\n", nil
}

// RewriteMakefile parses makefile source and removes every comment-headed
// section classified as test or benchmark. The result of an unchanged tree
// is byte-identical to the input.
func RewriteMakefile(src string) string {
	m := makefile.Parse(src)
	m.Filter(func(n makefile.Node) bool { return !makefile.IsDev(n) })
	return m.String()
}

// subdirsList returns the list assigned to a top-level `subdirs` variable.
func subdirsList(r blueprint.Rule) *blueprint.List {
	var name blueprint.Ident
	var expr blueprint.Expr
	switch a := r.(type) {
	case *blueprint.Assignment:
		name, expr = a.Name, a.Expr
	case *blueprint.CompoundAssignment:
		name, expr = a.Name, a.Expr
	default:
		return nil
	}
	if name != "subdirs" {
		return nil
	}
	l, _ := expr.(*blueprint.List)
	return l
}

// ruleMap returns the map body of a scope or of a map-valued assignment.
func ruleMap(r blueprint.Rule) *blueprint.Map {
	switch a := r.(type) {
	case *blueprint.Scope:
		return a.Map
	case *blueprint.Assignment:
		m, _ := a.Expr.(*blueprint.Map)
		return m
	case *blueprint.CompoundAssignment:
		m, _ := a.Expr.(*blueprint.Map)
		return m
	default:
		return nil
	}
}

// filterList removes string and string-operand elements containing any of
// the fragments. Maps and nested lists are kept; lists never hold them in
// positions this pass needs to prune.
func filterList(l *blueprint.List, fragments []string) {
	l.Filter(func(e blueprint.Expr) bool {
		switch v := e.(type) {
		case blueprint.String:
			return v.StrOp(noneMatch(fragments))
		case *blueprint.BinaryOperator:
			return !v.StrOp(someMatch(fragments))
		default:
			return true
		}
	})
}

func noneMatch(fragments []string) func(string) bool {
	return func(s string) bool {
		lower := strings.ToLower(s)
		for _, f := range fragments {
			if strings.Contains(lower, f) {
				return false
			}
		}
		return true
	}
}

func someMatch(fragments []string) func(string) bool {
	return func(s string) bool { return !noneMatch(fragments)(s) }
}
