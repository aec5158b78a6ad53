// Package server implements the serve command exposing catalog queries over
// a small HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/simplestream/pkg/cmdhelper"
	"github.com/wuxler/simplestream/pkg/commands/internal/options"
	"github.com/wuxler/simplestream/pkg/errdefs"
	"github.com/wuxler/simplestream/pkg/simplestream"
	"github.com/wuxler/simplestream/pkg/xlog"
)

// New returns a command with default values.
func New(commonOpts *options.Common, sourceOpts *options.SourceOptions) *Command {
	return &Command{
		Common: commonOpts,
		Source: sourceOpts,
		Server: options.NewServerOptions(),
	}
}

// Command starts an HTTP server answering release queries from the
// configured catalog source. The catalog is fetched per request so responses
// always reflect the published document.
type Command struct {
	Common *options.Common
	Source *options.SourceOptions
	Server *options.ServerOptions
}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"server"},
		Usage:   "Serve catalog queries over HTTP",
		UsageText: `simplestream serve [OPTIONS]

# Start the server with default port 8080
$ simplestream serve

# Start the server with custom port
$ simplestream serve --port 9000

# Serve queries from a catalog saved on disk
$ simplestream --input ./download.json serve
`,
		Flags:  c.Flags(),
		Action: c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *Command) Flags() []cli.Flag {
	flags := []cli.Flag{}
	flags = append(flags, c.Server.Flags()...)
	return flags
}

// Run is the main function for the current command
func (c *Command) Run(ctx context.Context, cmd *cli.Command) error {
	address := c.Server.Address()
	xlog.C(ctx).Infof("Starting server %s", address)

	// Start the HTTP server
	srv := &http.Server{
		Addr:              address,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			xlog.C(ctx).Error("Server error", "error", err)
		}
	}()

	cmdhelper.Fprintf(cmd.Writer, "Server started at http://%s\n", address)
	cmdhelper.Fprintf(cmd.Writer, "Press Ctrl+C to stop the server\n")

	// Wait for interrupt signal
	<-ctx.Done()

	// Create a timeout context for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second) //nolint:gomnd // disable magic number lint error
	defer cancel()

	// Shutdown the server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		xlog.C(ctx).Error("Server shutdown failed", "error", err)
		return err
	}

	xlog.C(ctx).Info("Server stopped")
	return nil
}

// Router returns the HTTP handler serving the query API.
func (c *Command) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Define routes
	router.GET("/ping", func(gc *gin.Context) {
		gc.String(http.StatusOK, "OK")
	})
	v1 := router.Group("/v1")
	{
		v1.GET("/releases", c.handleReleases)
		v1.GET("/current", c.handleCurrent)
		v1.GET("/releases/:release", c.handleRelease)
		v1.GET("/releases/:release/checksum", c.handleChecksum)
	}
	return router
}

type releaseInfo struct {
	Release      string `json:"release"`
	ReleaseTitle string `json:"release_title"`
	Version      string `json:"version"`
	Pubname      string `json:"pubname,omitempty"`
}

type checksumInfo struct {
	Release string `json:"release"`
	Pubname string `json:"pubname"`
	SHA256  string `json:"sha256"`
}

func (c *Command) handleReleases(gc *gin.Context) {
	stream, err := c.Source.FetchStream(gc.Request.Context(), c.Common)
	if err != nil {
		abortWithError(gc, err)
		return
	}
	products, err := stream.SupportedProducts()
	if err != nil {
		abortWithError(gc, err)
		return
	}
	infos := make([]releaseInfo, 0, len(products))
	for _, product := range products {
		info, err := makeReleaseInfo(product)
		if err != nil {
			abortWithError(gc, err)
			return
		}
		infos = append(infos, info)
	}
	gc.JSON(http.StatusOK, infos)
}

func (c *Command) handleCurrent(gc *gin.Context) {
	stream, err := c.Source.FetchStream(gc.Request.Context(), c.Common)
	if err != nil {
		abortWithError(gc, err)
		return
	}
	product, err := stream.CurrentProduct()
	if err != nil {
		abortWithError(gc, err)
		return
	}
	if !product.IsValid() {
		abortWithError(gc, errdefs.Newf(errdefs.ErrNotFound, "no release is flagged as the default"))
		return
	}
	info, err := makeReleaseInfo(product)
	if err != nil {
		abortWithError(gc, err)
		return
	}
	if info.Pubname, err = product.Pubname(""); err != nil {
		abortWithError(gc, err)
		return
	}
	gc.JSON(http.StatusOK, info)
}

// handleRelease replies with the raw catalog entry of the release.
func (c *Command) handleRelease(gc *gin.Context) {
	product, ok := c.findProduct(gc)
	if !ok {
		return
	}
	gc.Data(http.StatusOK, "application/json", product.Raw())
}

// handleChecksum replies with the image checksum of the release, honoring an
// optional "revision" query parameter.
func (c *Command) handleChecksum(gc *gin.Context) {
	product, ok := c.findProduct(gc)
	if !ok {
		return
	}
	revision := gc.Query("revision")
	release, err := product.Release()
	if err != nil {
		abortWithError(gc, err)
		return
	}
	pubname, err := product.Pubname(revision)
	if err != nil {
		abortWithError(gc, err)
		return
	}
	checksum, err := product.Checksum(revision)
	if err != nil {
		abortWithError(gc, err)
		return
	}
	gc.JSON(http.StatusOK, checksumInfo{
		Release: release,
		Pubname: pubname,
		SHA256:  checksum,
	})
}

func (c *Command) findProduct(gc *gin.Context) (simplestream.Product, bool) {
	var zero simplestream.Product
	release := gc.Param("release")
	stream, err := c.Source.FetchStream(gc.Request.Context(), c.Common)
	if err != nil {
		abortWithError(gc, err)
		return zero, false
	}
	product, err := stream.FindProduct(release)
	if err != nil {
		abortWithError(gc, err)
		return zero, false
	}
	if !product.IsValid() {
		abortWithError(gc, errdefs.Newf(errdefs.ErrNotFound, "release %q not found", release))
		return zero, false
	}
	return product, true
}

func makeReleaseInfo(product simplestream.Product) (releaseInfo, error) {
	var zero releaseInfo
	release, err := product.Release()
	if err != nil {
		return zero, err
	}
	title, err := product.ReleaseTitle()
	if err != nil {
		return zero, err
	}
	version, err := product.Version()
	if err != nil {
		return zero, err
	}
	return releaseInfo{
		Release:      release,
		ReleaseTitle: title,
		Version:      version,
	}, nil
}

func abortWithError(gc *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errdefs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errdefs.ErrInvalidParameter):
		status = http.StatusBadRequest
	}
	gc.JSON(status, gin.H{"error": err.Error()})
}
