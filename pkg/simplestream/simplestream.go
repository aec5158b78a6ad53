// Package simplestream implements a read-only model over cloud image catalogs
// published in the simplestreams format, such as the ones served for Ubuntu
// cloud images. A Stream wraps one parsed catalog document and answers release
// queries; a Product is a lightweight view of a single catalog entry.
package simplestream

const (
	// DefaultHost is the host serving the official Ubuntu cloud image catalogs.
	DefaultHost = "cloud-images.ubuntu.com"

	// DefaultPath is the catalog document path for released Ubuntu downloads.
	DefaultPath = "/releases/streams/v1/com.ubuntu.cloud:released:download.json"

	// DefaultArchitecture is the architecture suffix used to filter products
	// when no other architecture is configured.
	DefaultArchitecture = "amd64"

	// DefaultImageName is the artifact entry looked up inside a revision's
	// "items" object when querying image details.
	DefaultImageName = "disk1.img"

	// DefaultChecksumName is the checksum entry read from an image item.
	DefaultChecksumName = "sha256"
)
