// Package source provides access to simplestreams catalog documents and the
// image artifacts they describe, either from a remote host over HTTP or from
// a local filesystem tree.
package source

import (
	"bytes"
	"context"
	"io"

	"github.com/wuxler/simplestream/pkg/simplestream"
	"github.com/wuxler/simplestream/pkg/util/xio"
)

// maxCatalogBytes specifies the limit on how many bytes a catalog document
// may occupy once decoded. The released Ubuntu download catalog is around
// 4 MiB, so 64 MiB leaves plenty of headroom while still bounding the decode
// of a compressed response.
const maxCatalogBytes int64 = 64 * xio.MiB

// Source provides a catalog document and the image artifacts it references.
type Source interface {
	// FetchCatalog returns a reader over the raw catalog document.
	FetchCatalog(ctx context.Context) (io.ReadCloser, error)

	// OpenImage opens the image artifact recorded in the catalog under path.
	// The path is relative to the catalog location. When offset is positive
	// the returned reader starts at that byte position, with size the total
	// artifact size as recorded in the catalog.
	OpenImage(ctx context.Context, path string, offset, size int64) (io.ReadCloser, error)
}

// FetchStream retrieves the catalog document from the source and parses it
// into a Stream.
func FetchStream(ctx context.Context, src Source, opts ...simplestream.Option) (*simplestream.Stream, error) {
	rc, err := src.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	defer xio.CloseAndLogError(rc, "close catalog reader")

	buf := &bytes.Buffer{}
	if err := xio.LimitCopy(buf, rc, maxCatalogBytes); err != nil {
		return nil, err
	}
	return simplestream.New(buf.Bytes(), opts...)
}
