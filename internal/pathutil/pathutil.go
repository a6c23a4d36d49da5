// Package pathutil provides shared path validation helpers.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateOutputPath validates a result file path before anything is written
// to it. Traversal is detected per segment, before cleaning, so that
// "results/../etc/passwd" is rejected even though its cleaned form carries no
// ".." anymore. Returns an error if the path is empty, contains null bytes,
// or has ".." in any segment.
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("output path contains invalid characters")
	}

	normalized := filepath.ToSlash(path)
	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return fmt.Errorf("output path contains path traversal: %q", path)
		}
	}
	return nil
}
