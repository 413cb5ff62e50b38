package fsops

import (
	"fmt"
	"path/filepath"
)

// ResolveAbs resolves path to an absolute path with all symlinks and
// `.`/`..` components eliminated. It is only ever called for paths that
// Classify already found to exist; a nonexistent path is handled by the
// caller copying the input verbatim instead (see selector.Select).
func ResolveAbs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return resolved, nil
}
