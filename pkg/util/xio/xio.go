// Package xio provides io helpers shared across the project.
package xio

import (
	"fmt"
	"io"
)

const (
	_   = iota
	KiB = 1 << (10 * iota)
	MiB
	GiB
)

// LimitCopy copies from the reader until EOF but fails when the copy reaches
// the limit. This is useful when reading untrusted payloads to protect
// against decompression bomb attacks.
func LimitCopy(w io.Writer, r io.Reader, limit int64) error {
	written, err := io.Copy(w, io.LimitReader(r, limit))
	if err != nil {
		return err
	}
	if written >= limit {
		return fmt.Errorf("size to read limit hit (potential decompression bomb attack): %d", limit)
	}
	return nil
}
