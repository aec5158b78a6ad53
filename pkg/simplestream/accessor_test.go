package simplestream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestField(t *testing.T) {
	testcases := []struct {
		name      string
		document  string
		key       string
		wantFound bool
		wantRaw   string
	}{
		{
			name:      "simple member",
			document:  `{"release": "noble"}`,
			key:       "release",
			wantFound: true,
			wantRaw:   `"noble"`,
		},
		{
			name:      "dotted member name is matched literally",
			document:  `{"items": 1, "disk1.img": {"sha256": "abc"}}`,
			key:       "disk1.img",
			wantFound: true,
			wantRaw:   `{"sha256": "abc"}`,
		},
		{
			name:      "colon member name is matched literally",
			document:  `{"com.ubuntu.cloud:server:24.04:amd64": true}`,
			key:       "com.ubuntu.cloud:server:24.04:amd64",
			wantFound: true,
			wantRaw:   `true`,
		},
		{
			name:     "absent member",
			document: `{"release": "noble"}`,
			key:      "version",
		},
		{
			name:     "scalar parent has no members",
			document: `"noble"`,
			key:      "release",
		},
		{
			name:     "array parent has no members",
			document: `["release"]`,
			key:      "release",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			node := gjson.Parse(tc.document)
			got, found := field(node, tc.key)
			assert.Equal(t, tc.wantFound, found)
			if tc.wantFound {
				assert.Equal(t, tc.wantRaw, got.Raw)
			}
		})
	}
}

func TestObjectField(t *testing.T) {
	node := gjson.Parse(`{"versions": {"20240821": {}}, "release": "noble"}`)

	got, err := objectField(node, "versions")
	require.NoError(t, err)
	assert.True(t, got.IsObject())

	_, err = objectField(node, "release")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorContains(t, err, `"release"`)

	_, err = objectField(node, "items")
	assert.ErrorIs(t, err, ErrMissingField)
	assert.ErrorContains(t, err, `"items"`)
}

func TestStringField(t *testing.T) {
	node := gjson.Parse(`{"release": "noble", "supported": true}`)

	got, err := stringField(node, "release")
	require.NoError(t, err)
	assert.Equal(t, "noble", got)

	_, err = stringField(node, "supported")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = stringField(node, "version")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestBoolField(t *testing.T) {
	node := gjson.Parse(`{"supported": true, "deprecated": false, "release": "noble", "count": 1}`)

	got, err := boolField(node, "supported")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = boolField(node, "deprecated")
	require.NoError(t, err)
	assert.False(t, got)

	_, err = boolField(node, "release")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	// numbers are not booleans
	_, err = boolField(node, "count")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = boolField(node, "absent")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestInt64Field(t *testing.T) {
	node := gjson.Parse(`{"size": 585498624, "path": "server/releases"}`)

	got, err := int64Field(node, "size")
	require.NoError(t, err)
	assert.Equal(t, int64(585498624), got)

	_, err = int64Field(node, "path")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = int64Field(node, "absent")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestLastKey(t *testing.T) {
	testcases := []struct {
		name     string
		document string
		want     string
		wantErr  error
	}{
		{
			name:     "single member",
			document: `{"20240821": {}}`,
			want:     "20240821",
		},
		{
			name:     "document order not key order",
			document: `{"20240901": {}, "20240423": {}}`,
			want:     "20240423",
		},
		{
			name:     "null member value still counts",
			document: `{"20240710": {}, "20240821": null}`,
			want:     "20240821",
		},
		{
			name:     "empty object",
			document: `{}`,
			wantErr:  ErrEmptyObject,
		},
		{
			name:     "not an object",
			document: `[1, 2, 3]`,
			wantErr:  ErrEmptyObject,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lastKey(gjson.Parse(tc.document))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
