package simplestream

import (
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/wuxler/simplestream/pkg/errdefs"
)

// Stream is a parsed catalog document. The document is immutable after New
// returns and all queries are plain reads, so results are stable across
// repeated calls. Products returned by the lookup methods alias the document
// buffer owned by the Stream and keep it reachable.
type Stream struct {
	raw      []byte
	products gjson.Result

	architecture string
	imageName    string
	checksumName string
}

// New parses and validates document as a catalog. The byte slice is retained
// by the returned Stream and must not be modified afterwards.
func New(document []byte, opts ...Option) (*Stream, error) {
	o := makeOptions(opts...)
	if !gjson.ValidBytes(document) {
		return nil, errdefs.Newf(ErrMalformedDocument, "document is not valid json")
	}
	root := gjson.ParseBytes(document)
	if !root.IsObject() {
		return nil, errdefs.Newf(ErrTypeMismatch, "document root is not an object")
	}
	products, err := objectField(root, "products")
	if err != nil {
		return nil, err
	}
	return &Stream{
		raw:          document,
		products:     products,
		architecture: o.architecture,
		imageName:    o.imageName,
		checksumName: o.checksumName,
	}, nil
}

// Products returns views of all products whose key ends with the stream's
// architecture suffix, in document order. A matching member that is not an
// object fails the enumeration with ErrTypeMismatch.
func (s *Stream) Products() ([]Product, error) {
	var products []Product
	var ferr error
	s.products.ForEach(func(k, v gjson.Result) bool {
		if !strings.HasSuffix(k.Str, s.architecture) {
			return true
		}
		if !v.IsObject() {
			ferr = errdefs.Newf(ErrTypeMismatch, "%q is not an object", k.Str)
			return false
		}
		products = append(products, Product{stream: s, key: k.Str, node: v})
		return true
	})
	if ferr != nil {
		return nil, ferr
	}
	return products, nil
}

// SupportedProducts returns the products currently flagged as supported,
// preserving enumeration order. Field access failures on any product fail
// the whole call.
func (s *Stream) SupportedProducts() ([]Product, error) {
	products, err := s.Products()
	if err != nil {
		return nil, err
	}
	var supported []Product
	for _, product := range products {
		ok, err := product.Supported()
		if err != nil {
			return nil, err
		}
		if ok {
			supported = append(supported, product)
		}
	}
	return supported, nil
}

// CurrentProduct returns the first product whose raw alias string contains
// "default". The match is a plain substring test, deliberately looser than
// the tokenized matching FindProduct applies. When no product matches, the
// returned Product is empty and the error is nil, callers must check
// Product.IsValid.
func (s *Stream) CurrentProduct() (Product, error) {
	var zero Product
	products, err := s.Products()
	if err != nil {
		return zero, err
	}
	for _, product := range products {
		aliases, err := product.Aliases()
		if err != nil {
			return zero, err
		}
		if strings.Contains(aliases, "default") {
			return product, nil
		}
	}
	return zero, nil
}

// FindProduct returns the first product matching release in a single
// left-to-right scan. A product matches when release exactly equals one of
// its comma separated alias tokens, ignoring the shared "lts" token, or when
// release contains the product's version as a substring. The first hit wins
// across the whole scan, so an earlier product matched by version substring
// shadows a later product with an exact alias. When no product matches, the
// returned Product is empty and the error is nil, callers must check
// Product.IsValid.
func (s *Stream) FindProduct(release string) (Product, error) {
	var zero Product
	products, err := s.Products()
	if err != nil {
		return zero, err
	}
	for _, product := range products {
		aliases, err := product.Aliases()
		if err != nil {
			return zero, err
		}
		tokens := lo.Filter(strings.Split(aliases, ","), func(token string, _ int) bool {
			return token != "lts"
		})
		if lo.Contains(tokens, release) {
			return product, nil
		}
		version, err := product.Version()
		if err != nil {
			return zero, err
		}
		if strings.Contains(release, version) {
			return product, nil
		}
	}
	return zero, nil
}
