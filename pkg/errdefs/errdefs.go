// Package errdefs defines the error sentinels shared across the project
// and helpers to attach them to concrete errors.
package errdefs

import (
	"errors"
	"fmt"
)

// Newf joins the base sentinel with a formatted error.
func Newf(base error, format string, args ...any) error {
	return errors.Join(base, fmt.Errorf(format, args...))
}

// NewE joins the base sentinel with err. A nil err stays nil and an err
// already carrying the sentinel is returned unchanged.
func NewE(base error, err error) error {
	if err == nil || errors.Is(err, base) {
		return err
	}
	return errors.Join(base, err)
}
