// Package shared provides small helpers used by more than one adapter.
package shared

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages. Empty output leaves err unchanged.
func CommandError(output []byte, err error) error {
	detail := strings.TrimSpace(string(output))
	if detail == "" {
		return err
	}
	return fmt.Errorf("%s: %w", detail, err)
}

// FileFormat is the lower-cased extension of path without its dot, or "json"
// when path has none.
func FileFormat(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "yml":
		return "yaml"
	case "":
		return "json"
	default:
		return ext
	}
}
