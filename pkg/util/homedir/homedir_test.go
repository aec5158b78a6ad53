package homedir_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/simplestream/pkg/util/homedir"
)

func TestGet(t *testing.T) {
	home, err := homedir.Get()
	require.NoError(t, err)
	assert.NotEmpty(t, home)
}

func TestExpand(t *testing.T) {
	home, err := homedir.Get()
	require.NoError(t, err)

	testcases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty", input: "", want: ""},
		{name: "absolute untouched", input: "/etc/ssl/ca.pem", want: "/etc/ssl/ca.pem"},
		{name: "relative untouched", input: "images/disk1.img", want: "images/disk1.img"},
		{name: "tilde prefix", input: "~/catalog.json", want: filepath.Join(home, "catalog.json")},
		{name: "bare tilde", input: "~", want: home},
		{name: "other user home", input: "~other/file", wantErr: true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := homedir.Expand(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
