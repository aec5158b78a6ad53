package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/simplestream/pkg/cmdhelper"
	"github.com/wuxler/simplestream/pkg/commands/internal/options"
	"github.com/wuxler/simplestream/pkg/errdefs"
	"github.com/wuxler/simplestream/pkg/util/xio"
)

// NewVerifyCommand returns a VerifyCommand with default values.
func NewVerifyCommand(commonOpts *options.Common, sourceOpts *options.SourceOptions) *VerifyCommand {
	return &VerifyCommand{
		Common: commonOpts,
		Source: sourceOpts,
	}
}

// VerifyCommand checks a local file against the checksum recorded in the
// catalog for a release.
type VerifyCommand struct {
	Common *options.Common
	Source *options.SourceOptions
}

// ToCLI transforms to a *cli.Command.
func (c *VerifyCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:            "verify",
		HideHelpCommand: true,
		Usage:           "Verify a local image file against the catalog checksum",
		UsageText: `simplestream verify [OPTIONS] RELEASE FILE

# Verify a downloaded image against the latest noble revision
$ simplestream verify noble ./ubuntu-24.04-server-cloudimg-amd64.img

# Verify against the checksum of a specific revision
$ simplestream verify --revision 20240605 noble ./ubuntu-24.04-server-cloudimg-amd64.img
`,
		ArgsUsage: "RELEASE FILE",
		Flags:     c.Flags(),
		Before:    cmdhelper.BeforeFunc(cmdhelper.ExactArgs(2)), //nolint:mnd // explicitly args number
		Action:    c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *VerifyCommand) Flags() []cli.Flag {
	return []cli.Flag{}
}

// Run is the main function for the current command.
func (c *VerifyCommand) Run(ctx context.Context, cmd *cli.Command) error {
	release := cmd.Args().First()
	target := cmd.Args().Get(1)

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

	pubname, err := product.Pubname(c.Source.Revision)
	if err != nil {
		return err
	}
	checksum, err := product.Checksum(c.Source.Revision)
	if err != nil {
		return err
	}
	want := digest.NewDigestFromEncoded(digest.SHA256, checksum)
	if err := want.Validate(); err != nil {
		return fmt.Errorf("invalid checksum %q recorded for %s: %w", checksum, pubname, err)
	}

	cmdhelper.Fprintf(cmd.Writer, `Verifying %s against %s
  - SHA256: %s
`, target, pubname, checksum)

	file, err := os.Open(target)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(file)

	reader := xio.NewMeasuredReader(file)
	start := time.Now()
	got, err := digest.FromReader(reader)
	if err != nil {
		return err
	}
	elapsed := time.Since(start).Round(time.Millisecond)
	cmdhelper.Fprintf(cmd.Writer, "Read %d bytes in %s (%.1f MiB/s)",
		reader.Total(), elapsed, reader.BytesPer(time.Second)/xio.MiB)

	if got != want {
		return errdefs.Newf(errdefs.ErrDataLoss, "checksum mismatch for %s: expect %s but got %s", target, want, got)
	}
	cmdhelper.Fprintf(cmd.Writer, "OK")
	return nil
}
