// Package commands defines the cli commands of the application.
package commands

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/simplestream/pkg/cmdhelper"
	"github.com/wuxler/simplestream/pkg/commands/internal/options"
	"github.com/wuxler/simplestream/pkg/commands/server"
	"github.com/wuxler/simplestream/pkg/errdefs"
	"github.com/wuxler/simplestream/pkg/simplestream"
)

// NewRootCommand returns the root command of the application.
func NewRootCommand() *RootCommand {
	return &RootCommand{
		Common: options.NewCommon(),
		Source: options.NewSourceOptions(),
	}
}

// RootCommand prints release information from a simplestreams catalog. The
// operation flags can be combined and run in a fixed order, list first, then
// current, then sha256.
type RootCommand struct {
	Common *options.Common
	Source *options.SourceOptions

	List    bool
	Current bool
	SHA256  bool
}

// ToCLI transforms to a *cli.Command.
func (c *RootCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "simplestream",
		Usage: "Print the latest Ubuntu cloud image information",
		UsageText: `simplestream [OPTIONS] [RELEASE...]

# List the currently supported Ubuntu releases
$ simplestream --list

# Show the current Ubuntu LTS version
$ simplestream --current

# Print the sha256 checksum of the disk image for two releases, short
# options can be stacked
$ simplestream -cs noble focal

# Query a catalog document saved on disk
$ simplestream --input ./download.json --list
`,
		ArgsUsage:              "[RELEASE...]",
		Suggest:                true,
		EnableShellCompletion:  true,
		HideVersion:            true,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Flags:                  c.Flags(),
		Before:                 cmdhelper.BeforeFunc(c.Setup),
		Commands: []*cli.Command{
			NewVersionCommand().ToCLI(),
			NewShowCommand(c.Common, c.Source).ToCLI(),
			NewDownloadCommand(c.Common, c.Source).ToCLI(),
			NewVerifyCommand(c.Common, c.Source).ToCLI(),
			server.New(c.Common, c.Source).ToCLI(),
		},
		Action: c.Run,
	}
}

// Flags defines the flags related to the current command. The operation
// flags are local to the root command, the options flags are shared with
// the subcommands.
func (c *RootCommand) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "list",
			Aliases:     []string{"l"},
			Usage:       "list currently supported Ubuntu releases",
			Local:       true,
			Destination: &c.List,
		},
		&cli.BoolFlag{
			Name:        "current",
			Aliases:     []string{"c"},
			Usage:       "show the current Ubuntu LTS version",
			Local:       true,
			Destination: &c.Current,
		},
		&cli.BoolFlag{
			Name:        "sha256",
			Aliases:     []string{"s"},
			Usage:       "print the sha256 checksum of the disk image for every RELEASE argument",
			Local:       true,
			Destination: &c.SHA256,
		},
	}
	flags = append(flags, c.Common.Flags()...)
	flags = append(flags, c.Source.Flags()...)
	return flags
}

// Setup applies the common options before any command action runs.
func (c *RootCommand) Setup(_ context.Context, _ *cli.Command) error {
	return c.Common.ConfigureLogging()
}

// Run is the main function for the current command.
func (c *RootCommand) Run(ctx context.Context, cmd *cli.Command) error {
	releases := cmd.Args().Slice()
	if !c.List && !c.Current && !c.SHA256 {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "no operation specified, use --list, --current or --sha256")
	}
	if c.SHA256 && len(releases) == 0 {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "no release specified for --sha256")
	}
	if !c.SHA256 && len(releases) > 0 {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "unexpected arguments: %s", strings.Join(releases, " "))
	}

	stream, err := c.Source.FetchStream(ctx, c.Common)
	if err != nil {
		return err
	}

	if c.List {
		if err := c.runList(cmd, stream); err != nil {
			return err
		}
	}
	if c.Current {
		if err := c.runCurrent(cmd, stream); err != nil {
			return err
		}
	}
	if c.SHA256 {
		if err := c.runSHA256(cmd, stream, releases); err != nil {
			return err
		}
	}
	return nil
}

func (c *RootCommand) runList(cmd *cli.Command, stream *simplestream.Stream) error {
	products, err := stream.SupportedProducts()
	if err != nil {
		return err
	}
	cmdhelper.Fprintf(cmd.Writer, "Supported Ubuntu releases:")
	for _, product := range products {
		title, err := product.ReleaseTitle()
		if err != nil {
			return err
		}
		release, err := product.Release()
		if err != nil {
			return err
		}
		cmdhelper.Fprintf(cmd.Writer, "  %s (%s)", title, release)
	}
	return nil
}

func (c *RootCommand) runCurrent(cmd *cli.Command, stream *simplestream.Stream) error {
	product, err := stream.CurrentProduct()
	if err != nil {
		return err
	}
	if !product.IsValid() {
		return errdefs.Newf(errdefs.ErrNotFound, "no release is flagged as the default")
	}
	version, err := product.Version()
	if err != nil {
		return err
	}
	pubname, err := product.Pubname("")
	if err != nil {
		return err
	}
	cmdhelper.Fprintf(cmd.Writer, "Current Ubuntu LTS version: %s", version)
	cmdhelper.Fprintf(cmd.Writer, "  %s", pubname)
	return nil
}

// runSHA256 resolves every release argument in turn. An unknown release is
// reported and skipped without failing the remaining lookups.
func (c *RootCommand) runSHA256(cmd *cli.Command, stream *simplestream.Stream, releases []string) error {
	for _, release := range releases {
		product, err := stream.FindProduct(release)
		if err != nil {
			return err
		}
		if !product.IsValid() {
			cmdhelper.Fprintf(cmd.ErrWriter, "error: Release %q not found.", release)
			continue
		}
		pubname, err := product.Pubname(c.Source.Revision)
		if err != nil {
			return err
		}
		checksum, err := product.Checksum(c.Source.Revision)
		if err != nil {
			return err
		}
		cmdhelper.Fprintf(cmd.Writer, "SHA256 checksum for %s of %s:", c.Source.Image, pubname)
		cmdhelper.Fprintf(cmd.Writer, "  %s", checksum)
	}
	return nil
}
