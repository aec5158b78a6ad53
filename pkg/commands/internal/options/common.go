// Package options defines the shared flag sets wired into the cli commands.
package options

import (
	"net/http"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/simplestream/pkg/util/homedir"
	"github.com/wuxler/simplestream/pkg/util/xhttp"
	"github.com/wuxler/simplestream/pkg/xlog"
)

// NewCommon returns a *Common with default values.
func NewCommon() *Common {
	return &Common{}
}

// Common are options that are common to all commands.
type Common struct {
	Debug   bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *Common) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Sources:     cli.EnvVars("SIMPLESTREAM_DEBUG"),
			Usage:       "enable debug mode",
			Destination: &o.Debug,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Sources:     cli.EnvVars("SIMPLESTREAM_LOG_FILE"),
			Usage:       "write logs to the rotated file additionally",
			Destination: &o.LogFile,
		},
	}
}

// ConfigureLogging installs the process logger according to the options.
// Logs go to stderr so that command output on stdout stays clean.
func (o *Common) ConfigureLogging() error {
	path, err := homedir.Expand(o.LogFile)
	if err != nil {
		return err
	}
	c := xlog.NewConfig()
	c.StdWriter = os.Stderr
	c.Path = path
	if o.Debug {
		c.Level = xlog.LevelDebug
	}
	xlog.SetDefault(xlog.New(c))
	return nil
}

// ApplyHTTPClient wraps the client transport to dump requests and responses
// in debug mode. Transcripts go to stderr, the transport default.
func (o *Common) ApplyHTTPClient(client *http.Client) {
	if o.Debug && client.Transport != nil {
		client.Transport = xhttp.NewDumpTransport(client.Transport)
	}
}
