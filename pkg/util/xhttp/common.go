package xhttp

import (
	"fmt"
	stdurl "net/url"
	"strings"

	"github.com/spf13/cast"
)

// ParseHostScheme splits an address into host and scheme. A bare host or
// domain without a scheme parses fine and returns an empty scheme, leaving
// the default to the caller.
func ParseHostScheme(addr string) (host, scheme string, err error) {
	hasScheme := strings.Contains(addr, "://")
	if !hasScheme {
		addr = "https://" + addr
	}
	url, err := stdurl.Parse(addr)
	if err != nil {
		return "", "", err
	}
	if !hasScheme {
		return url.Host, "", nil
	}
	return url.Host, url.Scheme, nil
}

// RangeString renders a [start, end) byte interval in the inclusive form
// used by the Range and Content-Range headers.
func RangeString(start, end int64) string {
	last := end - 1
	if last < 0 {
		last = 0
	}
	return fmt.Sprintf("%d-%d", start, last)
}

// ParseRange reads an inclusive byte interval from a Range or
// Content-Range header value and returns it in the [start, end) form.
func ParseRange(s string) (start, end int64, ok bool) {
	first, last, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	start, err0 := cast.ToInt64E(first)
	end, err1 := cast.ToInt64E(last)
	if end > 0 {
		end++
	}
	return start, end, err0 == nil && err1 == nil
}
