package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/simplestream/pkg/errdefs"
)

func TestShowCommand(t *testing.T) {
	t.Run("raw entry", func(t *testing.T) {
		stdout, _, err := runCommand(t, "--input", catalogFixture, "show", "noble")
		require.NoError(t, err)
		assert.Contains(t, stdout, `"release_codename": "Noble Numbat"`)
		assert.Contains(t, stdout, `"pubname": "ubuntu-noble-24.04-amd64-server-20240821"`)
	})

	t.Run("pretty entry", func(t *testing.T) {
		stdout, _, err := runCommand(t, "--input", catalogFixture, "show", "--pretty", "focal")
		require.NoError(t, err)
		assert.Contains(t, stdout, `"release": "focal"`)
		assert.Contains(t, stdout, `"release_title": "20.04 LTS"`)
	})

	t.Run("unknown release", func(t *testing.T) {
		_, _, err := runCommand(t, "--input", catalogFixture, "show", "warty")
		require.Error(t, err)
		assert.ErrorIs(t, err, errdefs.ErrNotFound)
	})

	t.Run("missing argument", func(t *testing.T) {
		_, _, err := runCommand(t, "--input", catalogFixture, "show")
		require.Error(t, err)
		assert.ErrorContains(t, err, "accepts 1 arg(s)")
	})
}
