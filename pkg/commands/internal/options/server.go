package options

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/simplestream/pkg/cmdhelper"
)

const (
	// ServerFlagCategory is the category name for the listener flags.
	ServerFlagCategory = "[Server]"

	// DefaultServerPort is the port the server listens on by default.
	DefaultServerPort int64 = 8080

	// DefaultServerHost is the host the server binds by default.
	DefaultServerHost = "127.0.0.1"
)

// NewServerOptions returns a new *ServerOptions with default values.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		Port: DefaultServerPort,
		Host: DefaultServerHost,
	}
}

// ServerOptions holds the listener configuration of the serve command.
type ServerOptions struct {
	// Port is the port for the server to listen on.
	Port int64

	// Host is the host for the server to listen on.
	Host string
}

// Flags returns the []cli.Flag related to current options.
func (o *ServerOptions) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "port",
			Aliases:     []string{"p"},
			Usage:       "port to listen on",
			Sources:     cli.EnvVars("SIMPLESTREAM_SERVER_PORT"),
			Value:       o.Port,
			Destination: &o.Port,
		},
		&cli.StringFlag{
			Name:        "listen-host",
			Usage:       "host to listen on",
			Sources:     cli.EnvVars("SIMPLESTREAM_SERVER_HOST"),
			Value:       o.Host,
			Destination: &o.Host,
		},
	}
	cmdhelper.SetFlagsCategory(ServerFlagCategory, flags...)
	return flags
}

// Address returns the listen address in the host:port form.
func (o *ServerOptions) Address() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}
