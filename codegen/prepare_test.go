package codegen

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMissingDirs(t *testing.T) {
	tmp := t.TempDir()
	leaf := filepath.Join(tmp, "a", "b", "c")

	got := missingDirs(leaf)
	want := []string{
		leaf,
		filepath.Join(tmp, "a", "b"),
		filepath.Join(tmp, "a"),
	}
	if len(got) != len(want) {
		t.Fatalf("missingDirs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("missingDirs[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if got := missingDirs(tmp); got != nil {
		t.Errorf("missingDirs on an existing path = %v, want nil", got)
	}
}

func TestPrepareOutDirCleanupRemovesParents(t *testing.T) {
	tmp := t.TempDir()
	leaf := filepath.Join(tmp, "a", "b", "c")

	gen := New(nil, Options{OutDir: leaf})
	cleanup, err := gen.prepareOutDir()
	if err != nil {
		t.Fatalf("prepareOutDir: %v", err)
	}
	if info, err := os.Stat(leaf); err != nil || !info.IsDir() {
		t.Fatalf("output directory not created: %v", err)
	}

	cleanup()
	if _, err := os.Stat(filepath.Join(tmp, "a")); !os.IsNotExist(err) {
		t.Error("cleanup left the created parent chain behind")
	}
}

func TestPrepareOutDirKeepsExisting(t *testing.T) {
	dir := t.TempDir()

	gen := New(nil, Options{OutDir: dir})
	cleanup, err := gen.prepareOutDir()
	if err != nil {
		t.Fatalf("prepareOutDir: %v", err)
	}
	cleanup()
	if _, err := os.Stat(dir); err != nil {
		t.Error("cleanup removed a directory this run did not create")
	}
}
