// Package fileutil holds the file-IO helpers the core treats as an
// external collaborator (§1).
//
// Grounded on original_source/compiler/src/utils/file_utils.cpp.
package fileutil

import (
	"os"
)

// ReadFile returns the full contents of path.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteToFile writes content to path, truncating any existing file.
func WriteToFile(path string, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
