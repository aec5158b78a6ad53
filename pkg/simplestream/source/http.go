package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	stdurl "net/url"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/wuxler/simplestream/pkg/appinfo"
	"github.com/wuxler/simplestream/pkg/errdefs"
	"github.com/wuxler/simplestream/pkg/util/xhttp"
	"github.com/wuxler/simplestream/pkg/util/xio"
	"github.com/wuxler/simplestream/pkg/xlog"
)

var _ Source = (*HTTP)(nil)

// defaultUserAgent identifies the application in requests to the catalog host.
var defaultUserAgent = fmt.Sprintf("simplestream/%s", appinfo.ShortVersion())

// NewHTTP returns an HTTP source for the catalog document served at the
// given path on addr. The addr may carry an explicit "http://" or "https://"
// scheme, a bare host defaults to "https".
func NewHTTP(addr, path string) (*HTTP, error) {
	host, scheme, err := xhttp.ParseHostScheme(addr)
	if err != nil {
		return nil, errdefs.NewE(errdefs.ErrInvalidParameter, err)
	}
	if host == "" {
		return nil, errdefs.Newf(errdefs.ErrInvalidParameter, "missing host in address %q", addr)
	}
	if scheme == "" {
		scheme = "https"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &HTTP{
		host:   host,
		scheme: scheme,
		path:   path,
	}, nil
}

// HTTP fetches catalog documents and image artifacts from a remote host.
type HTTP struct {
	// Client is the underlying HTTP client used to access the remote
	// host. If nil, http.DefaultClient is used.
	Client xhttp.Client

	// Header contains the custom headers to be added to each request.
	Header http.Header

	host   string
	scheme string
	path   string
}

// Host returns the catalog host.
func (s *HTTP) Host() string {
	return s.host
}

// CatalogURL returns the location of the catalog document.
func (s *HTTP) CatalogURL() *stdurl.URL {
	return &stdurl.URL{
		Scheme: s.scheme,
		Host:   s.host,
		Path:   s.path,
	}
}

// ResolveURL resolves an artifact path from the catalog against the catalog
// host. Artifact paths in simplestreams documents are host relative.
func (s *HTTP) ResolveURL(path string) *stdurl.URL {
	return &stdurl.URL{
		Scheme: s.scheme,
		Host:   s.host,
		Path:   "/" + strings.TrimPrefix(path, "/"),
	}
}

// FetchCatalog requests the catalog document. The request advertises gzip
// encoding and the response body is decoded transparently when the host
// answers compressed.
func (s *HTTP) FetchCatalog(ctx context.Context) (io.ReadCloser, error) {
	url := s.CatalogURL()
	xlog.C(ctx).Debugf("fetching catalog from %s", url)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), http.NoBody)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept-Encoding", "gzip")

	resp, err := s.do(request) //nolint:bodyclose // closed by the returned reader or on error
	if err != nil {
		return nil, err
	}
	if err := xhttp.Success(resp); err != nil {
		xio.CloseAndSkipError(resp.Body)
		return nil, err
	}

	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			xio.CloseAndSkipError(resp.Body)
			return nil, xhttp.MakeResponseError(resp, err)
		}
		return xio.WrapReader(zr, xio.MultiClosers(zr, resp.Body).Close), nil
	}
	return resp.Body, nil
}

// OpenImage requests the image artifact stored under path. When offset is
// positive a ranged request is sent and the host must answer with the
// artifact suffix starting at offset.
func (s *HTTP) OpenImage(ctx context.Context, path string, offset, size int64) (io.ReadCloser, error) {
	url := s.ResolveURL(path)
	xlog.C(ctx).Debugf("fetching image from %s", url)

	// image payloads are large, keep debug transcripts to the headers
	ctx = xhttp.WithDumpMode(ctx, xhttp.DumpRequest|xhttp.DumpResponse)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), http.NoBody)
	if err != nil {
		return nil, err
	}
	if offset > 0 {
		request.Header.Set("Range", "bytes="+xhttp.RangeString(offset, size))
	}

	resp, err := s.do(request) //nolint:bodyclose // closed by the caller or on error
	if err != nil {
		return nil, err
	}
	if offset == 0 {
		if err := xhttp.Success(resp); err != nil {
			xio.CloseAndSkipError(resp.Body)
			return nil, err
		}
		return resp.Body, nil
	}

	if err := xhttp.Success(resp, http.StatusPartialContent); err != nil {
		xio.CloseAndSkipError(resp.Body)
		return nil, err
	}
	if resp.StatusCode != http.StatusPartialContent {
		xio.CloseAndSkipError(resp.Body)
		return nil, xhttp.MakeResponseError(resp, fmt.Errorf("host ignored range request at offset %d", offset))
	}
	if err := checkContentRange(resp, offset); err != nil {
		xio.CloseAndSkipError(resp.Body)
		return nil, err
	}
	return resp.Body, nil
}

func (s *HTTP) do(request *http.Request) (*http.Response, error) {
	request.Header = s.expandHeader(request.Header)
	if request.Header.Get("User-Agent") == "" {
		request.Header.Set("User-Agent", defaultUserAgent)
	}
	resp, err := s.client().Do(request)
	if err != nil {
		return nil, xhttp.MakeRequestError(request, err)
	}
	return resp, nil
}

func (s *HTTP) client() xhttp.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func (s *HTTP) expandHeader(h http.Header) http.Header {
	if h == nil {
		h = make(http.Header)
	}
	for key, values := range s.Header {
		for _, value := range values {
			h.Add(key, value)
		}
	}
	return h
}

// checkContentRange verifies that a 206 response really starts at the
// requested offset.
func checkContentRange(resp *http.Response, offset int64) error {
	value := resp.Header.Get("Content-Range")
	sent, _, _ := strings.Cut(strings.TrimPrefix(value, "bytes "), "/")
	start, _, ok := xhttp.ParseRange(sent)
	if !ok {
		return xhttp.MakeResponseError(resp, fmt.Errorf("malformed Content-Range header %q", value))
	}
	if start != offset {
		return xhttp.MakeResponseError(resp, fmt.Errorf("range starts at %d, requested offset %d", start, offset))
	}
	return nil
}
