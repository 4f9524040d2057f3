package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("test content"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

func names(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir,
		"photo1.jpg",
		"photo2.JPG",
		"notes.txt",
		"report.docx",
		"album/photo3.jpg",
		"album/deep/photo4.png",
		".hidden/secret.jpg",
		".dotfile.jpg",
		"node_modules/pkg.jpg",
	)

	tests := []struct {
		name string
		opts ScanOptions
		want []string
	}{
		{
			name: "top level only",
			opts: ScanOptions{},
			want: []string{"notes.txt", "photo1.jpg", "photo2.JPG", "report.docx"},
		},
		{
			name: "extension filter is case-insensitive",
			opts: ScanOptions{Extensions: []string{"jpg"}},
			want: []string{"photo1.jpg", "photo2.JPG"},
		},
		{
			name: "recursive skips hidden and excluded",
			opts: ScanOptions{
				Extensions:  []string{".jpg", ".png"},
				Recursive:   true,
				ExcludeDirs: []string{"node_modules"},
			},
			want: []string{"photo1.jpg", "photo2.JPG", "photo3.jpg", "photo4.png"},
		},
		{
			name: "max depth",
			opts: ScanOptions{Extensions: []string{".jpg", ".png"}, Recursive: true, MaxDepth: 2, ExcludeDirs: []string{"node_modules"}},
			want: []string{"photo1.jpg", "photo2.JPG", "photo3.jpg"},
		},
		{
			name: "include hidden",
			opts: ScanOptions{Extensions: []string{".jpg"}, IncludeHidden: true},
			want: []string{".dotfile.jpg", "photo1.jpg", "photo2.JPG"},
		},
		{
			name: "glob match",
			opts: ScanOptions{Match: "photo*", Recursive: true, ExcludeDirs: []string{"node_modules"}},
			want: []string{"photo1.jpg", "photo2.JPG", "photo3.jpg", "photo4.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanDirectory(tmpDir, tt.opts)
			if err != nil {
				t.Fatalf("ScanDirectory() error = %v", err)
			}
			got := names(result.Files)
			sort.Strings(got)
			want := append([]string(nil), tt.want...)
			sort.Strings(want)
			if len(got) != len(want) {
				t.Fatalf("got %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("file[%d] = %q, want %q", i, got[i], want[i])
				}
			}
		})
	}
}

func TestScanDirectory_AbsolutePathsAndSize(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "a.txt")

	result, err := ScanDirectory(tmpDir, ScanOptions{})
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(result.Files))
	}
	f := result.Files[0]
	if !filepath.IsAbs(f.Path) {
		t.Errorf("path %q is not absolute", f.Path)
	}
	if f.Size != int64(len("test content")) {
		t.Errorf("size = %d, want %d", f.Size, len("test content"))
	}
	if got := result.Paths(); len(got) != 1 || got[0] != f.Path {
		t.Errorf("Paths() = %v", got)
	}
}

func TestScanDirectory_NaturalOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "img10.jpg", "img2.jpg", "img1.jpg", "IMG3.jpg")

	result, err := ScanDirectory(tmpDir, ScanOptions{})
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}
	want := []string{"img1.jpg", "img2.jpg", "IMG3.jpg", "img10.jpg"}
	got := names(result.Files)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScanDirectory_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "file.txt")

	if _, err := ScanDirectory(filepath.Join(tmpDir, "missing"), ScanOptions{}); err == nil {
		t.Error("expected error for missing directory")
	}
	if _, err := ScanDirectory(filepath.Join(tmpDir, "file.txt"), ScanOptions{}); err == nil {
		t.Error("expected error for file path")
	}
	if _, err := ScanDirectory(tmpDir, ScanOptions{Match: "[unclosed"}); err == nil {
		t.Error("expected error for malformed glob")
	}
}

func TestScanDirectory_EmptyDirectory(t *testing.T) {
	result, err := ScanDirectory(t.TempDir(), ScanOptions{Recursive: true})
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("expected no files, got %v", names(result.Files))
	}
	if result.Files == nil || result.Errors == nil {
		t.Error("expected non-nil slices")
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"a2", "a10", true},
		{"a10", "a2", false},
		{"a02", "a2", true},
		{"a2", "a02", false},
		{"Apple", "banana", true},
		{"file", "file1", true},
		{"x", "x", false},
		{"page9b", "page10a", true},
	}
	for _, tt := range tests {
		if got := NaturalLess(tt.a, tt.b); got != tt.want {
			t.Errorf("NaturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
