package xio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitCopy(t *testing.T) {
	limit := int64(100)

	t.Run("limit exceeded", func(t *testing.T) {
		w := &bytes.Buffer{}
		r := strings.NewReader(strings.Repeat("a", 101))
		err := LimitCopy(w, r, limit)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size to read limit hit")
	})

	t.Run("limit not exceeded", func(t *testing.T) {
		w := &bytes.Buffer{}
		r := strings.NewReader(strings.Repeat("a", 99))
		err := LimitCopy(w, r, limit)
		require.NoError(t, err)
		assert.Equal(t, 99, w.Len())
	})

	t.Run("read error propagated", func(t *testing.T) {
		w := &bytes.Buffer{}
		wantErr := errors.New("broken pipe")
		r := iotest.ErrReader(wantErr)
		err := LimitCopy(w, r, limit)
		require.ErrorIs(t, err, wantErr)
	})
}

func TestMultiClosers(t *testing.T) {
	var order []string
	mk := func(name string, err error) io.Closer {
		return WrapReader(strings.NewReader(""), func() error {
			order = append(order, name)
			return err
		})
	}
	failure := errors.New("close failed")
	closer := MultiClosers(mk("first", nil), mk("second", failure), mk("third", nil))

	err := closer.Close()
	require.ErrorIs(t, err, failure)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}
