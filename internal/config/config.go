// Package config loads buildtrim.toml, the optional per-tree configuration
// file. Every field has a default; a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest searched for, upward from the working directory.
const FileName = "buildtrim.toml"

// Config is the tool configuration.
type Config struct {
	Patterns PatternsConfig `toml:"patterns"`
	Remove   RemoveConfig   `toml:"remove"`
	Output   OutputConfig   `toml:"output"`
	Backup   BackupConfig   `toml:"backup"`
}

// PatternsConfig holds the discovery globs, relative to the processing root.
type PatternsConfig struct {
	Blueprint string `toml:"blueprint"`
	Makefile  string `toml:"makefile"`
}

// RemoveConfig holds the name fragments the removal pass prunes.
type RemoveConfig struct {
	// Subdirs are fragments matched against `subdirs` list entries.
	Subdirs []string `toml:"subdirs"`
	// Deps are fragments matched against nested dependency-list entries.
	Deps []string `toml:"deps"`
}

// OutputConfig controls blueprint re-emission. Indent is int64 because
// that is what TOML integers decode to; the driver narrows it safely.
type OutputConfig struct {
	Indent int64 `toml:"indent"`
}

// BackupConfig controls the backup copies taken before rewriting.
type BackupConfig struct {
	Suffix string `toml:"suffix"`
}

// Default returns the built-in configuration, matching the Android build
// trees the tool was written for.
func Default() Config {
	return Config{
		Patterns: PatternsConfig{
			Blueprint: "**/Android.bp",
			Makefile:  "**/Android.mk",
		},
		Remove: RemoveConfig{
			Subdirs: []string{"test", "benchmark"},
			Deps:    []string{"libgtest", "test-proto", "starlarktest"},
		},
		Output: OutputConfig{Indent: 4},
		Backup: BackupConfig{Suffix: ".bak"},
	}
}

// Load reads and validates the manifest at path, layered over defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Output.Indent < 0 {
		return Config{}, fmt.Errorf("%s: [output].indent must not be negative", path)
	}
	if cfg.Backup.Suffix == "" {
		return Config{}, fmt.Errorf("%s: [backup].suffix must not be empty", path)
	}
	return cfg, nil
}

// Discover walks upward from startDir looking for a manifest. It returns
// the defaults when none is found.
func Discover(startDir string) (Config, string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Config{}, "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			cfg, err := Load(candidate)
			return cfg, candidate, err
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Default(), "", nil
}
