package simplestream

import "github.com/tidwall/gjson"

// Product is a read-only view of a single entry in a catalog's "products"
// object. A Product owns no data, it references its originating Stream and
// aliases the document buffer held by it, so copies are cheap and every
// getter re-reads the document.
//
// Products returned by Stream lookups may be empty when nothing matched.
// Callers must check IsValid before reading fields, every getter on an empty
// Product fails with ErrMissingField.
type Product struct {
	stream *Stream
	key    string
	node   gjson.Result
}

// Key returns the product's member name in the catalog, such as
// "com.ubuntu.cloud:server:24.04:amd64". Empty for an empty Product.
func (p Product) Key() string {
	return p.key
}

// Raw returns the product object as it appears in the catalog document.
func (p Product) Raw() []byte {
	return []byte(p.node.Raw)
}

// IsValid reports whether the view wraps an existing product object.
func (p Product) IsValid() bool {
	return p.node.IsObject()
}

// Supported reports whether the product is currently flagged as supported.
func (p Product) Supported() (bool, error) {
	return boolField(p.node, "supported")
}

// Aliases returns the raw comma separated alias string, such as
// "24.04,default,lts,n,noble".
func (p Product) Aliases() (string, error) {
	return stringField(p.node, "aliases")
}

// Release returns the release code name, such as "noble".
func (p Product) Release() (string, error) {
	return stringField(p.node, "release")
}

// ReleaseTitle returns the human readable release title, such as "24.04 LTS".
func (p Product) ReleaseTitle() (string, error) {
	return stringField(p.node, "release_title")
}

// Version returns the release version, such as "24.04".
func (p Product) Version() (string, error) {
	return stringField(p.node, "version")
}

// Pubname returns the published image identifier recorded under the selected
// revision, such as "ubuntu-noble-24.04-amd64-server-20240423". An empty
// revision selects the newest one.
func (p Product) Pubname(revision string) (string, error) {
	entry, err := p.versionEntry(revision)
	if err != nil {
		return "", err
	}
	return stringField(entry, "pubname")
}

// Checksum returns the checksum recorded for the stream's image artifact
// under the selected revision. An empty revision selects the newest one.
func (p Product) Checksum(revision string) (string, error) {
	item, err := p.imageItem(revision)
	if err != nil {
		return "", err
	}
	return stringField(item, p.stream.checksumName)
}

// ImagePath returns the download path of the stream's image artifact,
// relative to the catalog host. An empty revision selects the newest one.
func (p Product) ImagePath(revision string) (string, error) {
	item, err := p.imageItem(revision)
	if err != nil {
		return "", err
	}
	return stringField(item, "path")
}

// ImageSize returns the size in bytes of the stream's image artifact. An
// empty revision selects the newest one.
func (p Product) ImageSize(revision string) (int64, error) {
	item, err := p.imageItem(revision)
	if err != nil {
		return 0, err
	}
	return int64Field(item, "size")
}

// versionEntry resolves revision against the product's "versions" object.
// When revision is empty the last member in document order is selected as
// the most recent one, failing with ErrEmptyObject when no revisions have
// been published.
func (p Product) versionEntry(revision string) (gjson.Result, error) {
	versions, err := objectField(p.node, "versions")
	if err != nil {
		return gjson.Result{}, err
	}
	if revision == "" {
		revision, err = lastKey(versions)
		if err != nil {
			return gjson.Result{}, err
		}
	}
	return objectField(versions, revision)
}

// imageItem descends into items.<image> of the selected revision.
func (p Product) imageItem(revision string) (gjson.Result, error) {
	entry, err := p.versionEntry(revision)
	if err != nil {
		return gjson.Result{}, err
	}
	items, err := objectField(entry, "items")
	if err != nil {
		return gjson.Result{}, err
	}
	return objectField(items, p.stream.imageName)
}
