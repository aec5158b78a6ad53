package xio

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapReader(t *testing.T) {
	t.Run("forwards WriteTo", func(t *testing.T) {
		closed := false
		r := strings.NewReader("catalog content")
		rc := WrapReader(r, func() error {
			closed = true
			return nil
		})
		assert.IsType(t, readCloserWriteToWrapper{}, rc)

		var sb strings.Builder
		n, err := rc.(io.WriterTo).WriteTo(&sb)
		require.NoError(t, err)
		assert.Equal(t, int64(len("catalog content")), n)
		assert.Equal(t, "catalog content", sb.String())

		require.NoError(t, rc.Close())
		assert.True(t, closed)
	})

	t.Run("plain reader", func(t *testing.T) {
		closed := false
		r := iotest.DataErrReader(strings.NewReader("catalog content"))
		rc := WrapReader(r, func() error {
			closed = true
			return nil
		})
		assert.IsType(t, readCloserWrapper{}, rc)

		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "catalog content", string(got))

		require.NoError(t, rc.Close())
		assert.True(t, closed)
	})

	t.Run("nil closer", func(t *testing.T) {
		rc := WrapReader(iotest.DataErrReader(strings.NewReader("x")), nil)
		require.NoError(t, rc.Close())
	})
}
