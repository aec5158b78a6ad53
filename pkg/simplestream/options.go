package simplestream

func makeOptions(opts ...Option) options {
	opt := options{
		architecture: DefaultArchitecture,
		imageName:    DefaultImageName,
		checksumName: DefaultChecksumName,
	}
	for _, o := range opts {
		o(&opt)
	}
	return opt
}

type options struct {
	architecture string
	imageName    string
	checksumName string
}

// Option is a functional option for constructing a Stream.
type Option func(*options)

// WithArchitecture sets the architecture suffix that product keys are matched
// against. If not set, "amd64" will be used as default.
func WithArchitecture(architecture string) Option {
	return func(o *options) {
		o.architecture = architecture
	}
}

// WithImageName sets the artifact entry queried inside a revision's "items"
// object. If not set, "disk1.img" will be used as default.
func WithImageName(imageName string) Option {
	return func(o *options) {
		o.imageName = imageName
	}
}

// WithChecksumName sets the checksum entry read from an image item. If not
// set, "sha256" will be used as default.
func WithChecksumName(checksumName string) Option {
	return func(o *options) {
		o.checksumName = checksumName
	}
}
