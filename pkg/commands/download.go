package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/opencontainers/go-digest"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/simplestream/pkg/cmdhelper"
	"github.com/wuxler/simplestream/pkg/commands/internal/options"
	"github.com/wuxler/simplestream/pkg/errdefs"
	"github.com/wuxler/simplestream/pkg/simplestream"
	"github.com/wuxler/simplestream/pkg/simplestream/source"
	"github.com/wuxler/simplestream/pkg/util/homedir"
	"github.com/wuxler/simplestream/pkg/util/xcontext"
	"github.com/wuxler/simplestream/pkg/util/xio"
	"github.com/wuxler/simplestream/pkg/util/xos"
)

// NewDownloadCommand returns a DownloadCommand with default values.
func NewDownloadCommand(commonOpts *options.Common, sourceOpts *options.SourceOptions) *DownloadCommand {
	return &DownloadCommand{
		Common:    commonOpts,
		Source:    sourceOpts,
		OutputDir: ".",
	}
}

// DownloadCommand downloads the disk image of one or more releases and
// verifies the recorded checksum while writing.
type DownloadCommand struct {
	Common *options.Common
	Source *options.SourceOptions

	OutputDir string
	Force     bool
	Continue  bool
}

// ToCLI transforms to a *cli.Command.
func (c *DownloadCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:            "download",
		Aliases:         []string{"get"},
		HideHelpCommand: true,
		Usage:           "Download the disk image of a release",
		UsageText: `simplestream download [OPTIONS] RELEASE...

# Download the disk image of the latest noble revision
$ simplestream download noble

# Download a specific revision into a target directory
$ simplestream download --revision 20240605 --output-dir ./images noble

# Resume a partially downloaded image
$ simplestream download --continue noble
`,
		ArgsUsage: "RELEASE...",
		Flags:     c.Flags(),
		Before:    cmdhelper.BeforeFunc(cmdhelper.MinimumNArgs(1)),
		Action:    c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *DownloadCommand) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output-dir",
			Aliases:     []string{"o"},
			Usage:       "directory to save the downloaded image into",
			Value:       c.OutputDir,
			Destination: &c.OutputDir,
		},
		&cli.BoolFlag{
			Name:        "force",
			Aliases:     []string{"f"},
			Usage:       "force to run, ignore prompt and overwrite the existing file",
			Value:       c.Force,
			Destination: &c.Force,
		},
		&cli.BoolFlag{
			Name:        "continue",
			Aliases:     []string{"c"},
			Usage:       "resume a partially downloaded image instead of starting over",
			Value:       c.Continue,
			Destination: &c.Continue,
		},
	}
}

// Run is the main function for the current command.
func (c *DownloadCommand) Run(ctx context.Context, cmd *cli.Command) error {
	outputDir, err := homedir.Expand(c.OutputDir)
	if err != nil {
		return err
	}
	src, err := c.Source.NewSource(c.Common)
	if err != nil {
		return err
	}
	stream, err := source.FetchStream(ctx, src, c.Source.StreamOptions()...)
	if err != nil {
		return err
	}

	for _, release := range cmd.Args().Slice() {
		if err := xcontext.NonBlockingCheck(ctx, "download canceled"); err != nil {
			return err
		}
		if err := c.download(ctx, cmd, src, stream, release, outputDir); err != nil {
			return err
		}
	}
	return nil
}

func (c *DownloadCommand) download(ctx context.Context, cmd *cli.Command, src source.Source, stream *simplestream.Stream, release, outputDir string) error {
	product, err := stream.FindProduct(release)
	if err != nil {
		return err
	}
	if !product.IsValid() {
		return errdefs.Newf(errdefs.ErrNotFound, "release %q not found", release)
	}

	revision := c.Source.Revision
	pubname, err := product.Pubname(revision)
	if err != nil {
		return err
	}
	imagePath, err := product.ImagePath(revision)
	if err != nil {
		return err
	}
	size, err := product.ImageSize(revision)
	if err != nil {
		return err
	}
	checksum, err := product.Checksum(revision)
	if err != nil {
		return err
	}
	dgst := digest.NewDigestFromEncoded(digest.SHA256, checksum)
	if err := dgst.Validate(); err != nil {
		return fmt.Errorf("invalid checksum %q recorded for %s: %w", checksum, pubname, err)
	}

	dest := filepath.Join(outputDir, path.Base(imagePath))
	cmdhelper.Fprintf(cmd.Writer, `Downloading %s
  - Path  : %s
  - Size  : %d
  - SHA256: %s
`, pubname, imagePath, size, checksum)

	offset, err := c.resolveOffset(dest, size)
	if err != nil {
		return err
	}
	if offset == 0 {
		if proceed, err := c.confirmOverwrite(dest); err != nil || !proceed {
			return err
		}
	}

	switch {
	case offset == size:
		cmdhelper.Fprintf(cmd.Writer, "Found complete local file %s, verifying", dest)
	case offset > 0:
		cmdhelper.Fprintf(cmd.Writer, "Resuming %s at offset %d", dest, offset)
		if err := c.fetch(ctx, cmd, src, imagePath, dest, offset, size); err != nil {
			return err
		}
	default:
		if err := c.fetch(ctx, cmd, src, imagePath, dest, 0, size); err != nil {
			return err
		}
	}

	if err := verifyLocalFile(dest, dgst); err != nil {
		return err
	}
	cmdhelper.Fprintf(cmd.Writer, "Downloaded %s", dest)
	return nil
}

// resolveOffset inspects the destination file and returns the byte position
// to continue from. Zero means a full download, either because the file does
// not exist yet or because resume is not requested.
func (c *DownloadCommand) resolveOffset(dest string, size int64) (int64, error) {
	fi, err := os.Stat(dest)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if fi.IsDir() {
		return 0, errdefs.Newf(errdefs.ErrInvalidParameter, "destination %s is a directory", dest)
	}
	if !c.Continue {
		return 0, nil
	}
	if fi.Size() > size {
		return 0, fmt.Errorf("local file %s is %d bytes, larger than the recorded image size %d", dest, fi.Size(), size)
	}
	return fi.Size(), nil
}

// confirmOverwrite prompts before an existing file is replaced. It reports
// false without error when the user declines.
func (c *DownloadCommand) confirmOverwrite(dest string) (bool, error) {
	if c.Force {
		return true, nil
	}
	if _, err := os.Stat(dest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	prompt := &promptui.Prompt{
		Label:     fmt.Sprintf("File %s already exists, overwrite it", dest),
		Default:   "N",
		IsConfirm: true,
	}
	userInput, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(userInput, "y"), nil
}

// fetch transfers the image content starting at offset into dest, appending
// when offset is positive and truncating otherwise.
func (c *DownloadCommand) fetch(ctx context.Context, cmd *cli.Command, src source.Source, imagePath, dest string, offset, size int64) error {
	rc, err := src.OpenImage(ctx, imagePath, offset, size)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(rc)

	var file *os.File
	if offset > 0 {
		file, err = xos.OpenFileAppend(dest)
	} else {
		file, err = xos.Create(dest)
	}
	if err != nil {
		return err
	}

	writer := xio.NewMeasuredWriter(file)
	start := time.Now()
	_, copyErr := io.Copy(writer, rc)
	if err := file.Close(); copyErr == nil {
		copyErr = err
	}
	if copyErr != nil {
		return copyErr
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	cmdhelper.Fprintf(cmd.Writer, "Fetched %d bytes in %s (%.1f MiB/s)",
		writer.Total(), elapsed, writer.BytesPer(time.Second)/xio.MiB)
	return nil
}

// verifyLocalFile recomputes the digest of the file and compares it with the
// one recorded in the catalog.
func verifyLocalFile(path string, want digest.Digest) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(file)

	got, err := digest.FromReader(file)
	if err != nil {
		return err
	}
	if got != want {
		return errdefs.Newf(errdefs.ErrDataLoss, "checksum mismatch for %s: expect %s but got %s", path, want, got)
	}
	return nil
}
