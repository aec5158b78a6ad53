package xhttp

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/samber/lo"

	"github.com/wuxler/simplestream/pkg/errdefs"
)

// maxErrorBytes limits how much of an error response body is quoted in the
// returned error. Hosts answer failed catalog requests with short messages,
// 8 KiB leaves plenty of room.
const maxErrorBytes int64 = 8 * 1024 // 8 KiB

// Success returns nil when the response status code is one of the allowed
// codes. StatusOK is always allowed. Otherwise it returns an error quoting
// an excerpt of the response body.
//
// NOTE: Success reads resp.Body but never closes it, closing stays with the
// caller.
func Success(resp *http.Response, allowedCodes ...int) error {
	if resp == nil {
		return errors.New("response is nil")
	}
	allowedCodes = append(allowedCodes, http.StatusOK)
	if lo.Contains(lo.Uniq(allowedCodes), resp.StatusCode) {
		return nil
	}

	errMsg := fmt.Sprintf("unexpected status code %d", resp.StatusCode)
	body := resp.Body
	if body == nil {
		body = http.NoBody
	}
	content, err := io.ReadAll(io.LimitReader(body, maxErrorBytes))
	switch {
	case err != nil:
		return MakeResponseError(resp, fmt.Errorf("%s: unable to read response body: %w", errMsg, err))
	case len(content) > 0:
		return MakeResponseError(resp, fmt.Errorf("%s: %s", errMsg, string(content)))
	default:
		return MakeResponseError(resp, errors.New(errMsg))
	}
}

// MakeResponseError prefixes err with the request line of the response and
// marks a 404 as errdefs.ErrNotFound. A nil resp returns err unchanged.
func MakeResponseError(resp *http.Response, err error) error {
	if resp == nil {
		return err
	}
	ret := MakeRequestError(resp.Request, err)
	if ret == nil {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		ret = errdefs.NewE(errdefs.ErrNotFound, ret)
	}
	return ret
}

// MakeRequestError prefixes err with the request method and redacted URL.
func MakeRequestError(req *http.Request, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), err)
}
