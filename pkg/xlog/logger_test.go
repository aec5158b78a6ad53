package xlog_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/simplestream/pkg/xlog"
)

func newTestConfig(stdout *bytes.Buffer) xlog.Config {
	c := xlog.NewConfig()
	c.AddSource = false
	c.AttrReplacer = xlog.ChainReplacer(
		xlog.NormalizeSourceAttrReplacer(),
		xlog.SuppressTimeAttrReplacer(),
	)
	c.StdWriter = stdout
	return c
}

func TestLogger_SetLevel(t *testing.T) {
	stdout := &bytes.Buffer{}
	xlog.SetDefault(xlog.New(newTestConfig(stdout)))

	xlog.Debug("fetching catalog", "host", "cloud-images.ubuntu.com")
	xlog.Debugf("fetched %d products", 24)
	xlog.SetLevel(xlog.LevelDebug)
	xlog.Debug("fetching catalog", "host", "cloud-images.ubuntu.com")
	xlog.Debugf("fetched %d products", 24)

	want := strings.TrimLeft(`
level=DEBUG msg="fetching catalog" host=cloud-images.ubuntu.com
level=DEBUG msg="fetched 24 products"
`, "\n")
	assert.Equal(t, want, stdout.String())
}

func TestLogger_FileHandler(t *testing.T) {
	stdout := &bytes.Buffer{}

	c := newTestConfig(stdout)
	c.Path = filepath.Join(t.TempDir(), "simplestream.log")
	xlog.SetDefault(xlog.New(c))

	xlog.Info("fetching catalog", "host", "cloud-images.ubuntu.com")
	xlog.Debug("resolved product", "release", "noble")
	xlog.SetLevel(xlog.LevelDebug)
	xlog.Debug("resolved product", "release", "noble")

	t.Run("stdout", func(t *testing.T) {
		want := strings.TrimLeft(`
level=INFO msg="fetching catalog" host=cloud-images.ubuntu.com
level=DEBUG msg="resolved product" release=noble
`, "\n")
		assert.Equal(t, want, stdout.String())
	})

	t.Run("logfile", func(t *testing.T) {
		content, err := os.ReadFile(c.Path)
		require.NoError(t, err)
		want := strings.TrimLeft(`
{"level":"INFO","msg":"fetching catalog","host":"cloud-images.ubuntu.com"}
{"level":"DEBUG","msg":"resolved product","release":"noble"}
`, "\n")
		assert.Equal(t, want, string(content))
	})
}

func TestLogger_With(t *testing.T) {
	stdout := &bytes.Buffer{}
	logger := xlog.New(newTestConfig(stdout)).With("component", "source")

	logger.Info("catalog fetched")

	assert.Equal(t, "level=INFO msg=\"catalog fetched\" component=source\n", stdout.String())
}

func TestNormalizeSourceAttrReplacer(t *testing.T) {
	repl := xlog.NormalizeSourceAttrReplacer()
	attr := slog.Any(slog.SourceKey, &slog.Source{
		Function: "example.Func",
		File:     "/path/to/pkg/file.go",
		Line:     42,
	})
	got := repl(nil, attr)
	source, ok := got.Value.Any().(*slog.Source)
	require.True(t, ok)
	assert.Equal(t, "file.go", source.File)
	assert.Equal(t, 42, source.Line)
}
