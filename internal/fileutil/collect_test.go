package fileutil

import (
	"path/filepath"
	"testing"
)

func TestCollect_ArgumentOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "b.txt", "a.txt", "dir/c2.txt", "dir/c10.txt")

	args := []string{
		filepath.Join(tmpDir, "b.txt"),
		filepath.Join(tmpDir, "dir"),
		filepath.Join(tmpDir, "a.txt"),
		filepath.Join(tmpDir, "b.txt"),
	}
	result, err := Collect(args, ScanOptions{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	want := []string{"b.txt", "c2.txt", "c10.txt", "a.txt"}
	got := result.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	dirs := result.Dirs()
	if dirs[0] == dirs[1] {
		t.Errorf("Dirs() = %v, want distinct directories for b.txt and c2.txt", dirs)
	}
}

func TestCollect_MissingArgument(t *testing.T) {
	if _, err := Collect([]string{filepath.Join(t.TempDir(), "nope.txt")}, ScanOptions{}); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestScanResult_Dirs(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "a/x.txt", "b/x.txt")

	result, err := Collect([]string{filepath.Join(tmpDir, "a"), filepath.Join(tmpDir, "b")}, ScanOptions{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	abs, _ := filepath.Abs(tmpDir)
	want := []string{filepath.Join(abs, "a"), filepath.Join(abs, "b")}
	got := result.Dirs()
	if len(got) != len(want) {
		t.Fatalf("Dirs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dir[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "taken.txt")

	if !Exists(tmpDir, "taken.txt") {
		t.Error("expected taken.txt to exist")
	}
	if Exists(tmpDir, "free.txt") {
		t.Error("expected free.txt to be absent")
	}
}
