// Package driver discovers Android build files under a root directory and
// rewrites them with the test and benchmark sections removed. Each file is
// handled independently; a parse failure in one never blocks the rest.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind identifies which dialect a discovered file is parsed as.
type Kind uint8

const (
	KindBlueprint Kind = iota
	KindMakefile
)

func (k Kind) String() string {
	switch k {
	case KindBlueprint:
		return "blueprint"
	case KindMakefile:
		return "makefile"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// DiscoverFiles returns the paths under root matching pattern, sorted. The
// pattern is a doublestar glob relative to root; returned paths are joined
// back onto root in the platform's separator.
func DiscoverFiles(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}
