// Package xos provides os helpers shared across the project.
package xos

import (
	"os"
	"path/filepath"
)

// Create is a wrapper for os.Create. It will automatically make the parent directory
// with "0o700" permission mode if it does not exist.
func Create(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// OpenFileAppend opens a file for appending and creates the parent directory
// when it does not exist. It is used to continue partially written files.
func OpenFileAppend(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
}
