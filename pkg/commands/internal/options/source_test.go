package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/simplestream/pkg/commands/internal/options"
	"github.com/wuxler/simplestream/pkg/simplestream/source"
)

func TestSourceOptions_NormalizedArch(t *testing.T) {
	testcases := []struct {
		arch string
		want string
	}{
		{"amd64", "amd64"},
		{"x86_64", "amd64"},
		{"aarch64", "arm64"},
		{"arm64", "arm64"},
		{"s390x", "s390x"},
	}
	for _, tc := range testcases {
		t.Run(tc.arch, func(t *testing.T) {
			o := options.NewSourceOptions()
			o.Arch = tc.arch
			assert.Equal(t, tc.want, o.NormalizedArch())
		})
	}
}

func TestSourceOptions_NewSource(t *testing.T) {
	t.Run("http by default", func(t *testing.T) {
		o := options.NewSourceOptions()
		src, err := o.NewSource(options.NewCommon())
		require.NoError(t, err)
		httpSource, ok := src.(*source.HTTP)
		require.True(t, ok)
		assert.Equal(t, "cloud-images.ubuntu.com", httpSource.Host())
	})

	t.Run("file when input is set", func(t *testing.T) {
		o := options.NewSourceOptions()
		o.Input = "testdata/catalog.json"
		src, err := o.NewSource(options.NewCommon())
		require.NoError(t, err)
		fileSource, ok := src.(*source.File)
		require.True(t, ok)
		assert.Equal(t, "testdata/catalog.json", fileSource.Path())
	})
}
