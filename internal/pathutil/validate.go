// Package pathutil provides output path handling for written charts.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateFileName checks that name is a plain file name: non-empty, no
// directory separators, no null bytes and not "." or "..".
func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("file name validation failed: name is empty")
	}

	// Check for null bytes (common injection vector)
	if strings.ContainsRune(name, '\x00') {
		return fmt.Errorf("file name validation failed: name contains null byte")
	}

	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("file name validation failed: %q is not a plain file name", name)
	}

	return nil
}

// EnsureDir creates dir and any missing parents. An existing directory is
// left untouched.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// OutputPath ensures dir exists and returns the path of name inside it.
func OutputPath(dir, name string) (string, error) {
	if err := ValidateFileName(name); err != nil {
		return "", err
	}
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
