package utils

import (
	"os"
	"path/filepath"
)

// ReadScript resolves a possibly relative script path and returns the
// absolute path along with the file's contents.
func ReadScript(relPath string) (fullPath string, source string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", "", err
	}
	return fullPath, string(data), nil
}
