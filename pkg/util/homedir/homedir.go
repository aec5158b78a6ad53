// Package homedir resolves the home directory of the current user.
package homedir

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// Get returns the home directory of the current user, preferring the
// environment over an account lookup so that overrides like HOME work.
//
// If linking statically with cgo enabled against glibc, ensure the
// osusergo build tag is used.
func Get() (string, error) {
	var errs []error
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	} else {
		errs = append(errs, err)
	}
	if u, err := user.Current(); err == nil && u != nil {
		return u.HomeDir, nil
	} else {
		errs = append(errs, err)
	}
	return "", fmt.Errorf("unable to determine home directory: %w", errors.Join(errs...))
}

// Expand replaces a leading "~" with the home directory of the current user.
// Paths without the prefix are returned as-is. Expansion of another user's
// home, such as "~other/file", is not supported.
func Expand(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return "", errors.New("cannot expand user-specific home dir")
	}
	home, err := Get()
	if err != nil {
		return "", fmt.Errorf("cannot get user-specific home dir: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
