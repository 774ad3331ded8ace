package entities

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// FileSet maps a relative file path to its complete content.
type FileSet map[string]string

// Validate checks that the set is non-empty and every key is a clean
// relative path.
func (f FileSet) Validate() error {
	if len(f) == 0 {
		return fmt.Errorf("%w: file set is empty", ErrValidation)
	}
	for p := range f {
		if err := validateFilePath(p); err != nil {
			return err
		}
	}
	return nil
}

// Paths returns the keys in lexical order.
func (f FileSet) Paths() []string {
	paths := make([]string, 0, len(f))
	for p := range f {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func validateFilePath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%w: file path must not be empty", ErrValidation)
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return fmt.Errorf("%w: file path %q must be relative", ErrValidation, p)
	}
	if path.Clean(p) != p || p == "." || strings.HasPrefix(p, "../") || p == ".." {
		return fmt.Errorf("%w: file path %q is not a clean relative path", ErrValidation, p)
	}
	return nil
}
