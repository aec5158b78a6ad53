// Package cmdhelper provides common methods or types to help to build cli commands.
package cmdhelper

import (
	"context"
	"crypto/x509"
	"fmt"
	"os"
	"reflect"

	"github.com/urfave/cli/v3"
)

// ActionFunc is a function type to set *cli.Command Action
type ActionFunc func(ctx context.Context, cmd *cli.Command) error

// ActionFuncChain wraps multiple ActionFunc into one process.
func ActionFuncChain(handlers ...ActionFunc) ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		for _, h := range handlers {
			if err := h(ctx, cmd); err != nil {
				return err
			}
		}
		return nil
	}
}

// BeforeFunc adapts an ActionFunc to a cli.BeforeFunc.
func BeforeFunc(fn ActionFunc) cli.BeforeFunc {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		return ctx, fn(ctx, cmd)
	}
}

// ExactArgs returns an error if there are not exactly n args.
func ExactArgs(n int) ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		args := cmd.Args()
		if args.Len() != n {
			return fmt.Errorf("accepts %d arg(s), received %d", n, args.Len())
		}
		return nil
	}
}

// MinimumNArgs returns an error if there is not at least N args.
func MinimumNArgs(n int) ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		args := cmd.Args()
		if args.Len() < n {
			return fmt.Errorf("accepts at least %d arg(s), received %d", n, args.Len())
		}
		return nil
	}
}

// MaximumNArgs returns an error if there are more than N args.
func MaximumNArgs(n int) ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		args := cmd.Args()
		if args.Len() > n {
			return fmt.Errorf("accepts at most %d arg(s), received %d", n, args.Len())
		}
		return nil
	}
}

// NoArgs returns an error if any args are included.
func NoArgs() ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		args := cmd.Args()
		if args.Len() > 0 {
			return fmt.Errorf("no args required for %q, received %q", cmd.FullName(), args.First())
		}
		return nil
	}
}

// SetFlagsCategory fills the Category field of each flag that does not
// already have one. Flag implementations are concrete structs behind the
// cli.Flag interface so the field is set by reflection.
func SetFlagsCategory(category string, flags ...cli.Flag) {
	for _, flag := range flags {
		value := reflect.ValueOf(flag)
		if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
			continue
		}
		field := value.Elem().FieldByName("Category")
		if !field.IsValid() || field.Kind() != reflect.String || !field.CanSet() {
			continue
		}
		if field.String() == "" {
			field.SetString(category)
		}
	}
}

// LoadTLSCertFiles creates and loads all cert files with the paths specified.
func LoadTLSCertFiles(paths ...string) (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	for _, path := range paths {
		pemCerts, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if ok := pool.AppendCertsFromPEM(pemCerts); !ok {
			return nil, fmt.Errorf("unable to append certs from pem file %s", path)
		}
	}
	return pool, nil
}
