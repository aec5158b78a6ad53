package xhttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"time"

	"github.com/wuxler/simplestream/pkg/util/xcontext"
	"github.com/wuxler/simplestream/pkg/xlog"
)

// DumpMode selects which parts of an exchange are written out.
type DumpMode uint8

const (
	DumpRequest DumpMode = 1 << iota
	DumpRequestBody
	DumpResponse
	DumpResponseBody

	// DumpAll dumps both sides of the exchange with bodies.
	DumpAll = DumpRequest | DumpRequestBody | DumpResponse | DumpResponseBody
)

func (m DumpMode) String() string {
	names := []string{}
	if m.IsDumpRequest() {
		names = append(names, "DumpRequest")
	}
	if m.IsDumpRequestBody() {
		names = append(names, "DumpRequestBody")
	}
	if m.IsDumpResponse() {
		names = append(names, "DumpResponse")
	}
	if m.IsDumpResponseBody() {
		names = append(names, "DumpResponseBody")
	}
	if len(names) == 0 {
		return "DumpNone"
	}
	return strings.Join(names, "|")
}

func (m DumpMode) IsEnable() bool {
	return m != 0
}

func (m DumpMode) IsDumpRequest() bool {
	return m&DumpRequest != 0
}

func (m DumpMode) IsDumpRequestBody() bool {
	return m&DumpRequestBody != 0
}

func (m DumpMode) IsDumpResponse() bool {
	return m&DumpResponse != 0
}

func (m DumpMode) IsDumpResponseBody() bool {
	return m&DumpResponseBody != 0
}

// WithDumpMode overrides the transport dump mode for requests made with
// the returned context.
func WithDumpMode(ctx context.Context, mode DumpMode) context.Context {
	return xcontext.WithValue(ctx, mode)
}

// GetDumpMode returns the dump mode carried by the context.
func GetDumpMode(ctx context.Context) (DumpMode, bool) {
	return xcontext.GetValue[DumpMode](ctx)
}

// Inspired by: github.com/motemen/go-loghttp

var _ http.RoundTripper = (*DumpTransport)(nil)

// NewDumpTransport returns a [DumpTransport] wrapping the inner transport.
func NewDumpTransport(inner http.RoundTripper) *DumpTransport {
	return &DumpTransport{
		Out:         os.Stderr,
		DefaultMode: DumpAll,
		inner:       inner,
	}
}

// DumpTransport is a [http.RoundTripper] that writes a transcript of each
// exchange it carries. Output defaults to stderr so that transcripts do not
// mix with command output on stdout.
type DumpTransport struct {
	Out         io.Writer
	DefaultMode DumpMode

	inner http.RoundTripper
}

func (t *DumpTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mode := t.DefaultMode
	if value, ok := GetDumpMode(req.Context()); ok {
		mode = value
	}
	if !mode.IsEnable() {
		return t.inner.RoundTrip(req)
	}

	buf := &bytes.Buffer{}
	defer func() {
		if _, err := io.Copy(t.writer(), buf); err != nil {
			xlog.FromContext(req.Context()).Warnf("failed to dump request/response: %v", err)
		}
	}()

	if mode.IsDumpRequest() {
		t.dumpRequest(buf, req, mode)
	}

	start := time.Now()
	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if mode.IsDumpResponse() {
		t.dumpResponse(buf, resp, mode, time.Since(start))
	}
	return resp, err
}

func (t *DumpTransport) writer() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stderr
}

func (t *DumpTransport) dumpRequest(w io.Writer, req *http.Request, mode DumpMode) {
	title := fmt.Sprintf("--> %s %s", req.Method, req.URL)
	if !mode.IsDumpRequestBody() {
		title += " [body redacted]"
	}
	_, _ = fmt.Fprintf(w, "%s\n", title)

	// keep the original headers aside so credentials never reach the dump
	headers := req.Header.Clone()
	if req.Header.Get("authorization") != "" {
		req.Header.Set("authorization", "<redacted>")
	}
	b, err := httputil.DumpRequestOut(req, mode.IsDumpRequestBody())
	req.Header = headers

	writeDump(w, b, err)
}

func (t *DumpTransport) dumpResponse(w io.Writer, resp *http.Response, mode DumpMode, elapsed time.Duration) {
	req := resp.Request
	title := fmt.Sprintf("<-- %s %s %d %s", req.Method, req.URL, resp.StatusCode, http.StatusText(resp.StatusCode))
	if elapsed > 0 {
		title += fmt.Sprintf(" (%s)", elapsed)
	}
	if !mode.IsDumpResponseBody() {
		title += " [body redacted]"
	}
	_, _ = fmt.Fprintf(w, "%s\n", title)

	b, err := httputil.DumpResponse(resp, mode.IsDumpResponseBody())
	writeDump(w, b, err)
}

func writeDump(w io.Writer, b []byte, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(w, "failed to dump: %v\n", err)
		return
	}
	b = bytes.TrimSuffix(b, []byte("\r\n\r\n"))
	_, _ = fmt.Fprintf(w, "%s\n\n", string(b))
}
