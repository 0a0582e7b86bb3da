package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Patterns.Blueprint != "**/Android.bp" || cfg.Patterns.Makefile != "**/Android.mk" {
		t.Errorf("patterns = %+v", cfg.Patterns)
	}
	if len(cfg.Remove.Subdirs) == 0 || len(cfg.Remove.Deps) == 0 {
		t.Errorf("remove lists empty: %+v", cfg.Remove)
	}
	if cfg.Output.Indent != 4 || cfg.Backup.Suffix != ".bak" {
		t.Errorf("output/backup = %+v %+v", cfg.Output, cfg.Backup)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[output]
indent = 2

[remove]
subdirs = ["test"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Indent != 2 {
		t.Errorf("Indent = %d, want 2", cfg.Output.Indent)
	}
	if len(cfg.Remove.Subdirs) != 1 || cfg.Remove.Subdirs[0] != "test" {
		t.Errorf("Subdirs = %v", cfg.Remove.Subdirs)
	}
	// untouched sections keep their defaults
	if cfg.Patterns.Blueprint != "**/Android.bp" {
		t.Errorf("Blueprint = %q", cfg.Patterns.Blueprint)
	}
	if cfg.Backup.Suffix != ".bak" {
		t.Errorf("Suffix = %q", cfg.Backup.Suffix)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"negative indent", "[output]\nindent = -1\n"},
		{"empty suffix", "[backup]\nsuffix = \"\"\n"},
		{"malformed toml", "[output\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.contents)
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestDiscoverWalksUpward(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[output]\nindent = 8\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if cfg.Output.Indent != 8 {
		t.Errorf("Indent = %d, want 8", cfg.Output.Indent)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Output.Indent != Default().Output.Indent {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}
