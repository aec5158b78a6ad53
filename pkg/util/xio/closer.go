package xio

import (
	"errors"
	"io"
	"strings"

	"github.com/wuxler/simplestream/pkg/xlog"
)

// CloseAndSkipError closes c and drops the error returned.
func CloseAndSkipError(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// CloseAndLogError closes c and logs a warning when closing failed, with
// the optional messages joined as prefix. Meant for defers where a close
// error should not replace the function result but should not vanish
// either.
func CloseAndLogError(c io.Closer, messages ...string) {
	err := c.Close()
	if err == nil {
		return
	}
	if len(messages) == 0 {
		xlog.Warnf("unable to close: %+v", err)
		return
	}
	xlog.Warnf("unable to close: %s: %+v", strings.Join(messages, ": "), err)
}

// MultiClosers bundles the closers into one io.Closer. Close calls every
// closer even after one of them fails and joins the errors.
func MultiClosers(closers ...io.Closer) io.Closer {
	return multiClosers(closers)
}

type multiClosers []io.Closer

func (mc multiClosers) Close() error {
	var errs []error
	for _, closer := range mc {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
