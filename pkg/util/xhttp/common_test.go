package xhttp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/simplestream/pkg/util/xhttp"
)

func TestParseHostScheme(t *testing.T) {
	testcases := []struct {
		addr       string
		wantHost   string
		wantScheme string
	}{
		{"cloud-images.ubuntu.com", "cloud-images.ubuntu.com", ""},
		{"https://cloud-images.ubuntu.com", "cloud-images.ubuntu.com", "https"},
		{"http://localhost:8080", "localhost:8080", "http"},
		{"localhost:8080", "localhost:8080", ""},
		{"https://example.com/streams/v1", "example.com", "https"},
	}
	for _, tc := range testcases {
		t.Run(tc.addr, func(t *testing.T) {
			host, scheme, err := xhttp.ParseHostScheme(tc.addr)
			require.NoError(t, err)
			assert.Equal(t, tc.wantHost, host)
			assert.Equal(t, tc.wantScheme, scheme)
		})
	}
}

func TestRangeString(t *testing.T) {
	testcases := []struct {
		start int64
		end   int64
		want  string
	}{
		{0, 0, "0-0"},
		{0, 1, "0-0"},
		{0, 100, "0-99"},
		{512, 1024, "512-1023"},
	}
	for _, tc := range testcases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, xhttp.RangeString(tc.start, tc.end))
		})
	}
}

func TestParseRange(t *testing.T) {
	testcases := []struct {
		in        string
		wantStart int64
		wantEnd   int64
		wantOK    bool
	}{
		{"0-99", 0, 100, true},
		{"512-1023", 512, 1024, true},
		{"0-0", 0, 0, true},
		{"invalid", 0, 0, false},
		{"a-b", 0, 0, false},
	}
	for _, tc := range testcases {
		t.Run(tc.in, func(t *testing.T) {
			start, end, ok := xhttp.ParseRange(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantStart, start)
				assert.Equal(t, tc.wantEnd, end)
			}
		})
	}
}
