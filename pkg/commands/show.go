package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/simplestream/pkg/cmdhelper"
	"github.com/wuxler/simplestream/pkg/commands/internal/options"
	"github.com/wuxler/simplestream/pkg/errdefs"
)

// NewShowCommand returns a ShowCommand with default values.
func NewShowCommand(commonOpts *options.Common, sourceOpts *options.SourceOptions) *ShowCommand {
	return &ShowCommand{
		Common: commonOpts,
		Source: sourceOpts,
	}
}

// ShowCommand prints the raw catalog entry of a single release.
type ShowCommand struct {
	Common *options.Common
	Source *options.SourceOptions

	Pretty bool
}

// ToCLI transforms to a *cli.Command.
func (c *ShowCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:            "show",
		HideHelpCommand: true,
		Usage:           "Show the catalog entry of a release",
		UsageText: `simplestream show [OPTIONS] RELEASE

# Show the raw catalog entry of a release
$ simplestream show noble

# Show the catalog entry and prettify the output
$ simplestream show --pretty noble
`,
		ArgsUsage: "RELEASE",
		Flags:     c.Flags(),
		Before:    cmdhelper.BeforeFunc(cmdhelper.ExactArgs(1)),
		Action:    c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *ShowCommand) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "pretty",
			Usage:       "prettify to output",
			Destination: &c.Pretty,
			Value:       c.Pretty,
		},
	}
}

// Run is the main function for the current command.
func (c *ShowCommand) Run(ctx context.Context, cmd *cli.Command) error {
	release := cmd.Args().First()

	stream, err := c.Source.FetchStream(ctx, c.Common)
	if err != nil {
		return err
	}
	product, err := stream.FindProduct(release)
	if err != nil {
		return err
	}
	if !product.IsValid() {
		return errdefs.Newf(errdefs.ErrNotFound, "release %q not found", release)
	}

	content := product.Raw()
	if c.Pretty {
		if content, err = cmdhelper.PrettifyJSON(content); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(cmd.Writer, string(content))
	return err
}
