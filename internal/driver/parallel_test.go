package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"buildtrim/internal/config"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestDiscoverFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Android.bp":         "",
		"sub/Android.bp":     "",
		"sub/dir/Android.mk": "",
		"sub/other.txt":      "",
	})
	got, err := DiscoverFiles(root, "**/Android.bp")
	if err != nil {
		t.Fatalf("DiscoverFiles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want two blueprint files", got)
	}
	for _, p := range got {
		if filepath.Base(p) != "Android.bp" {
			t.Errorf("unexpected match %s", p)
		}
	}
}

func TestBackupRestore(t *testing.T) {
	root := writeTree(t, map[string]string{"Android.bp": "original"})
	path := filepath.Join(root, "Android.bp")

	if err := Backup(path, ".bak"); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if err := os.WriteFile(path, []byte("modified"), 0o644); err != nil {
		t.Fatal(err)
	}

	restored, err := Restore(path, ".bak")
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !restored {
		t.Error("Restore reported no backup")
	}
	if got := readFile(t, path); got != "original" {
		t.Errorf("restored contents = %q", got)
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	root := writeTree(t, map[string]string{"Android.bp": "x"})
	restored, err := Restore(filepath.Join(root, "Android.bp"), ".bak")
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored {
		t.Error("Restore reported a backup that does not exist")
	}
}

const devBlueprint = `cc_library {
    name: "libfoo",
}

cc_test {
    name: "libfoo_test",
}
`

const devMakefile = "all:\n\ttrue\n\n" +
	"# ==========\n# Test rules\n# ==========\n" +
	"test:\n\ttrue\n"

func TestRemoveDev(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Android.bp":     devBlueprint,
		"jni/Android.mk": devMakefile,
		"bad/Android.bp": "cc_library {",
	})

	opts := Options{Root: root, Config: config.Default()}
	results, err := RemoveDev(context.Background(), opts)
	if err != nil {
		t.Fatalf("RemoveDev: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	byPath := map[string]Result{}
	for _, res := range results {
		rel, relErr := filepath.Rel(root, res.Path)
		if relErr != nil {
			t.Fatal(relErr)
		}
		byPath[filepath.ToSlash(rel)] = res
	}

	bp := byPath["Android.bp"]
	if bp.Err != nil || !bp.Changed {
		t.Errorf("blueprint result = %+v", bp)
	}
	if got := readFile(t, bp.Path); strings.Contains(got, "cc_test") {
		t.Errorf("test scope survived:\n%s", got)
	}

	mk := byPath["jni/Android.mk"]
	if mk.Err != nil || !mk.Changed || mk.Kind != KindMakefile {
		t.Errorf("makefile result = %+v", mk)
	}
	if got := readFile(t, mk.Path); strings.Contains(got, "Test rules") {
		t.Errorf("test section survived:\n%s", got)
	}

	bad := byPath["bad/Android.bp"]
	if bad.Err == nil {
		t.Error("malformed blueprint produced no error")
	}
	if got := readFile(t, bad.Path); got != "cc_library {" {
		t.Errorf("malformed file was modified: %q", got)
	}
}

func TestRemoveDevTakesBackups(t *testing.T) {
	root := writeTree(t, map[string]string{"Android.bp": devBlueprint})
	opts := Options{Root: root, Config: config.Default()}
	if _, err := RemoveDev(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	backup := filepath.Join(root, "Android.bp.bak")
	if got := readFile(t, backup); got != devBlueprint {
		t.Errorf("backup contents = %q", got)
	}
}

func TestRemoveDevIsRepeatable(t *testing.T) {
	root := writeTree(t, map[string]string{"Android.bp": devBlueprint})
	opts := Options{Root: root, Config: config.Default()}

	if _, err := RemoveDev(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	first := readFile(t, filepath.Join(root, "Android.bp"))

	// the second run restores from the backup before rewriting
	results, err := RemoveDev(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Restored {
		t.Error("second run did not restore from the backup")
	}
	if got := readFile(t, filepath.Join(root, "Android.bp")); got != first {
		t.Errorf("second run diverged:\n%s\nvs:\n%s", got, first)
	}
}

func TestRemoveDevNoBackup(t *testing.T) {
	root := writeTree(t, map[string]string{"Android.bp": devBlueprint})
	opts := Options{Root: root, Config: config.Default(), DisableBackup: true}
	if _, err := RemoveDev(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, "Android.bp.bak")); !os.IsNotExist(err) {
		t.Error("backup taken despite DisableBackup")
	}
}

func TestRemoveDevKindSelection(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Android.bp": devBlueprint,
		"Android.mk": devMakefile,
	})
	opts := Options{Root: root, Config: config.Default(), MakefileOnly: true}
	results, err := RemoveDev(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Kind != KindMakefile {
		t.Fatalf("results = %+v, want one makefile", results)
	}
	if got := readFile(t, filepath.Join(root, "Android.bp")); got != devBlueprint {
		t.Error("blueprint touched despite MakefileOnly")
	}
}

func TestRemoveDevCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"Android.bp": devBlueprint})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := Options{Root: root, Config: config.Default()}
	if _, err := RemoveDev(ctx, opts); err == nil {
		t.Error("cancelled run reported no error")
	}
}

func TestBackupAndRestoreAll(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Android.bp":     devBlueprint,
		"jni/Android.mk": devMakefile,
	})
	opts := Options{Root: root, Config: config.Default()}

	if _, err := BackupAll(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "Android.bp")
	if err := os.WriteFile(path, []byte("clobbered"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := RestoreAll(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range results {
		if res.Err != nil || !res.Restored {
			t.Errorf("result = %+v", res)
		}
	}
	if got := readFile(t, path); got != devBlueprint {
		t.Errorf("restore left %q", got)
	}
}
