package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/simplestream/pkg/errdefs"
)

func TestVerifyCommand(t *testing.T) {
	content := testImageContent()
	checksum := digest.FromBytes(content).Encoded()
	ts := newImageServer(t, content, checksum)

	target := filepath.Join(t.TempDir(), "disk1.img")
	require.NoError(t, os.WriteFile(target, content, 0o644))

	stdout, _, err := runCommand(t,
		"--host", ts.URL, "--path", "/streams/v1/download.json",
		"verify", "noble", target)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Verifying "+target)
	assert.Contains(t, stdout, "OK")
}

func TestVerifyCommand_Mismatch(t *testing.T) {
	content := testImageContent()
	checksum := digest.FromBytes(content).Encoded()
	ts := newImageServer(t, content, checksum)

	target := filepath.Join(t.TempDir(), "disk1.img")
	require.NoError(t, os.WriteFile(target, append(content, "tampered"...), 0o644))

	_, _, err := runCommand(t,
		"--host", ts.URL, "--path", "/streams/v1/download.json",
		"verify", "noble", target)
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrDataLoss)
	assert.ErrorContains(t, err, "checksum mismatch")
}

func TestVerifyCommand_MissingFile(t *testing.T) {
	content := testImageContent()
	checksum := digest.FromBytes(content).Encoded()
	ts := newImageServer(t, content, checksum)

	_, _, err := runCommand(t,
		"--host", ts.URL, "--path", "/streams/v1/download.json",
		"verify", "noble", filepath.Join(t.TempDir(), "absent.img"))
	require.Error(t, err)
}

func TestVerifyCommand_MissingArguments(t *testing.T) {
	_, _, err := runCommand(t, "--input", catalogFixture, "verify", "noble")
	require.Error(t, err)
	assert.ErrorContains(t, err, "accepts 2 arg(s)")
}
