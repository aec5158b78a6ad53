package options

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/containerd/platforms"
	imgspecv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/simplestream/pkg/cmdhelper"
	"github.com/wuxler/simplestream/pkg/simplestream"
	"github.com/wuxler/simplestream/pkg/simplestream/source"
	"github.com/wuxler/simplestream/pkg/util/homedir"
)

const (
	// SourceFlagCategory is the category name for catalog source flags.
	SourceFlagCategory = "[Source]"
)

// NewSourceOptions returns a *SourceOptions with default values.
func NewSourceOptions() *SourceOptions {
	return &SourceOptions{
		Host:  simplestream.DefaultHost,
		Path:  simplestream.DefaultPath,
		Arch:  simplestream.DefaultArchitecture,
		Image: simplestream.DefaultImageName,
	}
}

// SourceOptions defines where the catalog document is read from and which
// products are selected from it.
type SourceOptions struct {
	Host     string        `json:"host,omitempty" yaml:"host,omitempty"`
	Path     string        `json:"path,omitempty" yaml:"path,omitempty"`
	Input    string        `json:"input,omitempty" yaml:"input,omitempty"`
	Arch     string        `json:"arch,omitempty" yaml:"arch,omitempty"`
	Image    string        `json:"image,omitempty" yaml:"image,omitempty"`
	Revision string        `json:"revision,omitempty" yaml:"revision,omitempty"`
	Timeout  time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Insecure bool          `json:"insecure,omitempty" yaml:"insecure,omitempty"`
	CAFiles  []string      `json:"ca_files,omitempty" yaml:"ca_files,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *SourceOptions) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "host",
			Usage:       "catalog host to fetch from",
			Sources:     cli.EnvVars("SIMPLESTREAM_HOST"),
			Value:       o.Host,
			Destination: &o.Host,
		},
		&cli.StringFlag{
			Name:        "path",
			Usage:       "catalog document path on the host",
			Sources:     cli.EnvVars("SIMPLESTREAM_PATH"),
			Value:       o.Path,
			Destination: &o.Path,
		},
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "read the catalog from a local file instead of fetching it",
			Sources:     cli.EnvVars("SIMPLESTREAM_INPUT"),
			Destination: &o.Input,
		},
		&cli.StringFlag{
			Name:        "arch",
			Usage:       "architecture of the products to select, such as \"amd64\" or \"arm64\"",
			Sources:     cli.EnvVars("SIMPLESTREAM_ARCH"),
			Value:       o.Arch,
			Destination: &o.Arch,
		},
		&cli.StringFlag{
			Name:        "image",
			Usage:       "image item name to query inside a product revision",
			Sources:     cli.EnvVars("SIMPLESTREAM_IMAGE"),
			Value:       o.Image,
			Destination: &o.Image,
		},
		&cli.StringFlag{
			Name:        "revision",
			Usage:       "revision entry to query, defaults to the newest one",
			Sources:     cli.EnvVars("SIMPLESTREAM_REVISION"),
			Destination: &o.Revision,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "timeout for catalog requests, zero means no timeout",
			Sources:     cli.EnvVars("SIMPLESTREAM_TIMEOUT"),
			Value:       o.Timeout,
			Destination: &o.Timeout,
		},
		&cli.BoolFlag{
			Name:        "insecure",
			Usage:       "enable to skip verify the host SSL certificate",
			Sources:     cli.EnvVars("SIMPLESTREAM_INSECURE"),
			Destination: &o.Insecure,
		},
		&cli.StringSliceFlag{
			Name:        "ca-files",
			Usage:       "specify CA files to verify the host SSL certificate",
			Destination: &o.CAFiles,
			Validator: func(paths []string) error {
				var errs []error
				for _, path := range paths {
					expanded, err := homedir.Expand(path)
					if err != nil {
						errs = append(errs, err)
						continue
					}
					if _, err := os.ReadFile(expanded); err != nil {
						errs = append(errs, err)
					}
				}
				return errors.Join(errs...)
			},
		},
	}
	cmdhelper.SetFlagsCategory(SourceFlagCategory, flags...)
	return flags
}

// NormalizedArch returns the architecture normalized to the platform
// convention used by catalog product keys, mapping forms like "x86_64" to
// "amd64" and "aarch64" to "arm64". Unknown values pass through unchanged.
func (o *SourceOptions) NormalizedArch() string {
	p := platforms.Normalize(imgspecv1.Platform{OS: "linux", Architecture: o.Arch})
	return p.Architecture
}

// StreamOptions returns the parse options derived from the current options.
func (o *SourceOptions) StreamOptions() []simplestream.Option {
	return []simplestream.Option{
		simplestream.WithArchitecture(o.NormalizedArch()),
		simplestream.WithImageName(o.Image),
	}
}

// NewHTTPClient returns an *http.Client configured with the TLS options.
func (o *SourceOptions) NewHTTPClient() (*http.Client, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tlsConfig := &tls.Config{
		InsecureSkipVerify: o.Insecure, //nolint:gosec // explicit skip verify
	}
	if len(o.CAFiles) > 0 {
		files := make([]string, 0, len(o.CAFiles))
		for _, path := range o.CAFiles {
			expanded, err := homedir.Expand(path)
			if err != nil {
				return nil, err
			}
			files = append(files, expanded)
		}
		pool, err := cmdhelper.LoadTLSCertFiles(files...)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}
	tr.TLSClientConfig = tlsConfig
	return &http.Client{
		Transport: tr,
		Timeout:   o.Timeout,
	}, nil
}

// NewHTTPSource returns a catalog source reading from the remote host.
func (o *SourceOptions) NewHTTPSource(commonOpts *Common) (*source.HTTP, error) {
	src, err := source.NewHTTP(o.Host, o.Path)
	if err != nil {
		return nil, err
	}
	client, err := o.NewHTTPClient()
	if err != nil {
		return nil, err
	}
	commonOpts.ApplyHTTPClient(client)
	src.Client = client
	return src, nil
}

// NewSource returns the catalog source selected by the options, a local file
// when --input is set and the remote host otherwise.
func (o *SourceOptions) NewSource(commonOpts *Common) (source.Source, error) {
	if o.Input != "" {
		input, err := homedir.Expand(o.Input)
		if err != nil {
			return nil, err
		}
		return source.NewFile(input), nil
	}
	return o.NewHTTPSource(commonOpts)
}

// FetchStream retrieves and parses the catalog from the selected source.
func (o *SourceOptions) FetchStream(ctx context.Context, commonOpts *Common) (*simplestream.Stream, error) {
	src, err := o.NewSource(commonOpts)
	if err != nil {
		return nil, err
	}
	return source.FetchStream(ctx, src, o.StreamOptions()...)
}
