package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDirName is the per-project state directory.
const HomeDirName = ".batchkit"

// GetHome returns the batchkit home directory.
// Priority order:
//  1. BATCHKIT_HOME environment variable (if set)
//  2. The nearest existing .batchkit directory from the working directory upwards
//  3. .batchkit in the working directory (created)
func GetHome() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return GetHomeFrom(cwd)
}

// GetHomeFrom resolves the home directory as GetHome does, starting at dir.
func GetHomeFrom(dir string) (string, error) {
	if home := os.Getenv("BATCHKIT_HOME"); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create batchkit home directory: %w", err)
		}
		return home, nil
	}

	if found := findHome(dir); found != "" {
		return found, nil
	}

	home := filepath.Join(dir, HomeDirName)
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create batchkit home directory: %w", err)
	}
	return home, nil
}

// findHome walks from dir to the filesystem root looking for a .batchkit
// directory.
func findHome(dir string) string {
	current := dir
	for {
		candidate := filepath.Join(current, HomeDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// ConfigPath returns the config file location inside home.
func ConfigPath(home string) string {
	return filepath.Join(home, "config.yaml")
}
