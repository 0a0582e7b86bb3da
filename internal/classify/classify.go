// Package classify holds the name heuristics that decide whether a build
// artifact is a test or benchmark target. Both build-file dialects share
// these rules: makefile comment titles and blueprint scope/module names are
// classified the same way.
package classify

import (
	"regexp"
	"strings"
)

// Kind is the classification of an artifact name.
type Kind int

const (
	// KindNone marks a name that is neither a test nor a benchmark.
	KindNone Kind = iota
	// KindTest marks a test artifact.
	KindTest
	// KindBenchmark marks a benchmark artifact.
	KindBenchmark
)

func (k Kind) String() string {
	switch k {
	case KindTest:
		return "test"
	case KindBenchmark:
		return "benchmark"
	default:
		return "none"
	}
}

// "test" must appear as its own token, or with a single leading 'g'
// (libgtest, gtest_main). A plain substring match would catch words
// like "latest".
var testPattern = regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9]|g)test`)

// "benchmark" must appear as its own token; unlike tests, a leading 'g'
// does not count ("gbenchmarks" is unrelated).
var benchmarkPattern = regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9])benchmark`)

// IsTest reports whether name refers to a test artifact. Names containing
// "non-test" are exempt: some defaults libraries (fmtlib's
// lib-non-test-defaults) must never be pruned.
func IsTest(name string) bool {
	if strings.Contains(strings.ToLower(name), "non-test") {
		return false
	}
	return testPattern.MatchString(name)
}

// IsBenchmark reports whether name refers to a benchmark artifact.
func IsBenchmark(name string) bool {
	return benchmarkPattern.MatchString(name)
}

// IsDev reports whether name refers to a development-only artifact,
// i.e. a test or a benchmark.
func IsDev(name string) bool {
	return IsTest(name) || IsBenchmark(name)
}

// Classify returns the kind of artifact the name refers to. Test wins over
// benchmark when both match, mirroring the order removal policies check.
func Classify(name string) Kind {
	switch {
	case IsTest(name):
		return KindTest
	case IsBenchmark(name):
		return KindBenchmark
	default:
		return KindNone
	}
}
