package xio

import "io"

// WrapReader turns a reader into an io.ReadCloser whose Close calls the
// given closer function. A nil closer yields a no-op Close. When r
// implements io.WriterTo the wrapper forwards WriteTo so copies stay on
// the fast path.
func WrapReader(r io.Reader, closer func() error) io.ReadCloser {
	if _, ok := r.(io.WriterTo); ok {
		return readCloserWriteToWrapper{readCloserWrapper{r, closer}}
	}
	return readCloserWrapper{r, closer}
}

type readCloserWrapper struct {
	io.Reader
	closer func() error
}

func (r readCloserWrapper) Close() error {
	if r.closer != nil {
		return r.closer()
	}
	return nil
}

type readCloserWriteToWrapper struct {
	readCloserWrapper
}

func (r readCloserWriteToWrapper) WriteTo(w io.Writer) (int64, error) {
	return r.Reader.(io.WriterTo).WriteTo(w)
}
