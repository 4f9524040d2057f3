package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Match is a shell glob matched against file names (e.g. "*.jpg")
	Match string
	// Extensions is a list of file extensions to include (e.g., ".docx", "jpg")
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// ExcludeDirs is a list of directory names to exclude (e.g., ".git", "node_modules")
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
	// IncludeHidden keeps files and directories whose names start with "."
	IncludeHidden bool
}

// File is one collected input.
type File struct {
	Path string // Absolute path
	Name string // Base name, the engine input
	Size int64  // Size in bytes
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the matched files in natural name order per directory
	Files []File
	// Errors contains any errors encountered during scanning
	Errors []error
}

// Paths returns the absolute paths of the scanned files.
func (r *ScanResult) Paths() []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.Path
	}
	return out
}

// ScanDirectory scans a directory for files matching the provided options
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	if opts.Match != "" {
		if _, err := filepath.Match(opts.Match, ""); err != nil {
			return nil, fmt.Errorf("invalid match pattern %q: %w", opts.Match, err)
		}
	}

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	excludeMap := make(map[string]bool)
	for _, d := range opts.ExcludeDirs {
		excludeMap[d] = true
	}

	result := &ScanResult{
		Files:  make([]File, 0),
		Errors: make([]error, 0),
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}
		if path == dir {
			return nil
		}

		hidden := strings.HasPrefix(d.Name(), ".")
		if d.IsDir() {
			if excludeMap[d.Name()] || (hidden && !opts.IncludeHidden) || !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				relPath, _ := filepath.Rel(dir, path)
				depth := strings.Count(relPath, string(filepath.Separator)) + 1
				if depth >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		name := d.Name()
		if hidden && !opts.IncludeHidden {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if len(extMap) > 0 && !extMap[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		if opts.Match != "" {
			if ok, _ := filepath.Match(opts.Match, name); !ok {
				return nil
			}
		}

		fi, err := d.Info()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to stat %s: %w", path, err))
			return nil
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}

		result.Files = append(result.Files, File{Path: absPath, Name: name, Size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.SliceStable(result.Files, func(i, j int) bool {
		di, dj := filepath.Dir(result.Files[i].Path), filepath.Dir(result.Files[j].Path)
		if di != dj {
			return di < dj
		}
		return NaturalLess(result.Files[i].Name, result.Files[j].Name)
	})

	return result, nil
}
