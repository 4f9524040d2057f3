package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Collect turns command line arguments into ordered inputs. Directories are
// scanned with opts; files are taken as given, in argument order. A path
// seen twice is kept once, at its first position.
func Collect(args []string, opts ScanOptions) (*ScanResult, error) {
	result := &ScanResult{Files: make([]File, 0), Errors: make([]error, 0)}
	seen := make(map[string]bool)

	add := func(f File) {
		if seen[f.Path] {
			return
		}
		seen[f.Path] = true
		result.Files = append(result.Files, f)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", arg, err)
		}
		if info.IsDir() {
			scanned, err := ScanDirectory(arg, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range scanned.Files {
				add(f)
			}
			result.Errors = append(result.Errors, scanned.Errors...)
			continue
		}
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", arg, err)
		}
		add(File{Path: abs, Name: filepath.Base(abs), Size: info.Size()})
	}
	return result, nil
}

// Names returns the base names of the collected files, the engine inputs.
func (r *ScanResult) Names() []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.Name
	}
	return out
}

// Dirs returns the directory of each collected file, in order.
func (r *ScanResult) Dirs() []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = filepath.Dir(f.Path)
	}
	return out
}

// Exists reports whether name exists in dir.
func Exists(dir, name string) bool {
	_, err := os.Lstat(filepath.Join(dir, name))
	return err == nil
}
