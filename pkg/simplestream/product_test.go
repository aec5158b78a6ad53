package simplestream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/simplestream/pkg/simplestream"
)

func TestProductGetters(t *testing.T) {
	stream := loadTestCatalog(t)
	product, err := stream.FindProduct("noble")
	require.NoError(t, err)
	require.True(t, product.IsValid())

	supported, err := product.Supported()
	require.NoError(t, err)
	assert.True(t, supported)

	aliases, err := product.Aliases()
	require.NoError(t, err)
	assert.Equal(t, "24.04,default,lts,n,noble", aliases)

	release, err := product.Release()
	require.NoError(t, err)
	assert.Equal(t, "noble", release)

	title, err := product.ReleaseTitle()
	require.NoError(t, err)
	assert.Equal(t, "24.04 LTS", title)

	version, err := product.Version()
	require.NoError(t, err)
	assert.Equal(t, "24.04", version)
}

func TestProductRevisionResolution(t *testing.T) {
	stream := loadTestCatalog(t)
	product, err := stream.FindProduct("noble")
	require.NoError(t, err)
	require.True(t, product.IsValid())

	t.Run("omitted revision resolves to newest", func(t *testing.T) {
		pubname, err := product.Pubname("")
		require.NoError(t, err)
		assert.Equal(t, "ubuntu-noble-24.04-amd64-server-20240821", pubname)

		checksum, err := product.Checksum("")
		require.NoError(t, err)
		assert.Equal(t, "32a9d30d18803da72f5936cf2b7b9efcb4d0bb63c67933f17e3bdfd1a02a671b", checksum)
	})

	t.Run("explicit revision", func(t *testing.T) {
		pubname, err := product.Pubname("20240605")
		require.NoError(t, err)
		assert.Equal(t, "ubuntu-noble-24.04-amd64-server-20240605", pubname)

		checksum, err := product.Checksum("20240605")
		require.NoError(t, err)
		assert.Equal(t, "ee4f9af27cf2598c2a76405b33e8d79502a52135412cab71e31c0a9ae4d61e2c", checksum)
	})

	t.Run("absent revision", func(t *testing.T) {
		_, err := product.Pubname("19700101")
		assert.ErrorIs(t, err, simplestream.ErrMissingField)
		assert.ErrorContains(t, err, "19700101")
	})
}

func TestProductRevisionDocumentOrder(t *testing.T) {
	// The newest revision is the last member in document order even when the
	// member names do not sort that way.
	document := `{"products": {"a-amd64": {"versions": {
		"20240901": {"pubname": "later-key"},
		"20240423": {"pubname": "last-member"}
	}}}}`
	stream, err := simplestream.New([]byte(document))
	require.NoError(t, err)
	products, err := stream.Products()
	require.NoError(t, err)
	require.Len(t, products, 1)

	pubname, err := products[0].Pubname("")
	require.NoError(t, err)
	assert.Equal(t, "last-member", pubname)
}

func TestProductEmptyVersions(t *testing.T) {
	document := `{"products": {"a-amd64": {"versions": {}}}}`
	stream, err := simplestream.New([]byte(document))
	require.NoError(t, err)
	products, err := stream.Products()
	require.NoError(t, err)
	require.Len(t, products, 1)

	_, err = products[0].Pubname("")
	assert.ErrorIs(t, err, simplestream.ErrEmptyObject)

	_, err = products[0].Checksum("")
	assert.ErrorIs(t, err, simplestream.ErrEmptyObject)

	// an explicit revision does not need the last member resolution
	_, err = products[0].Pubname("20240821")
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
}

func TestProductFieldErrors(t *testing.T) {
	document := `{"products": {"a-amd64": {
		"supported": "yes",
		"aliases": 42,
		"versions": {"20240821": {"pubname": true, "items": {"disk1.img": "flat"}}}
	}}}`
	stream, err := simplestream.New([]byte(document))
	require.NoError(t, err)
	products, err := stream.Products()
	require.NoError(t, err)
	require.Len(t, products, 1)
	product := products[0]

	_, err = product.Supported()
	assert.ErrorIs(t, err, simplestream.ErrTypeMismatch)

	_, err = product.Aliases()
	assert.ErrorIs(t, err, simplestream.ErrTypeMismatch)

	_, err = product.Release()
	assert.ErrorIs(t, err, simplestream.ErrMissingField)

	_, err = product.Pubname("")
	assert.ErrorIs(t, err, simplestream.ErrTypeMismatch)

	_, err = product.Checksum("")
	assert.ErrorIs(t, err, simplestream.ErrTypeMismatch)
	assert.ErrorContains(t, err, `"disk1.img"`)
}

func TestProductEmpty(t *testing.T) {
	document := `{"products": {}}`
	stream, err := simplestream.New([]byte(document))
	require.NoError(t, err)

	product, err := stream.FindProduct("noble")
	require.NoError(t, err)
	require.False(t, product.IsValid())
	assert.Empty(t, product.Key())

	_, err = product.Supported()
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
	_, err = product.Aliases()
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
	_, err = product.Release()
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
	_, err = product.ReleaseTitle()
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
	_, err = product.Version()
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
	_, err = product.Pubname("")
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
	_, err = product.Checksum("")
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
	_, err = product.ImagePath("")
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
	_, err = product.ImageSize("")
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
}

func TestProductImageDetails(t *testing.T) {
	stream := loadTestCatalog(t)
	product, err := stream.FindProduct("focal")
	require.NoError(t, err)
	require.True(t, product.IsValid())

	path, err := product.ImagePath("")
	require.NoError(t, err)
	assert.Equal(t, "server/releases/focal/release-20240821/ubuntu-20.04-server-cloudimg-amd64.img", path)

	size, err := product.ImageSize("")
	require.NoError(t, err)
	assert.Equal(t, int64(585498624), size)

	path, err = product.ImagePath("20240710")
	require.NoError(t, err)
	assert.Equal(t, "server/releases/focal/release-20240710/ubuntu-20.04-server-cloudimg-amd64.img", path)
}

func TestProductCustomImageAndChecksum(t *testing.T) {
	stream := loadTestCatalog(t,
		simplestream.WithImageName("disk-kvm.img"),
		simplestream.WithChecksumName("md5"),
	)
	product, err := stream.FindProduct("focal")
	require.NoError(t, err)
	require.True(t, product.IsValid())

	checksum, err := product.Checksum("")
	require.NoError(t, err)
	assert.Equal(t, "5f3060280bfe9a53e4bcbf97e0a9d07f", checksum)

	// jammy ships no kvm image in the fixture
	product, err = stream.FindProduct("jammy")
	require.NoError(t, err)
	require.True(t, product.IsValid())
	_, err = product.Checksum("")
	assert.ErrorIs(t, err, simplestream.ErrMissingField)
	assert.ErrorContains(t, err, "disk-kvm.img")
}
