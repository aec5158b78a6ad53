package errdefs

import "errors"

var (
	// ErrNotFound marks lookups of releases, products or files that do
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidParameter marks user input that fails validation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrAlreadyExists marks attempts to create something that is
	// already there.
	ErrAlreadyExists = errors.New("already exists")

	// ErrDataLoss marks corrupted or truncated content, a checksum
	// mismatch for example.
	ErrDataLoss = errors.New("data loss")
)
