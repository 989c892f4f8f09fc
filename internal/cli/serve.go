package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Digi Cafe HTTP API",
	Long: `Serve the barista chat, quiz generation and sound catalogue over HTTP.

Examples:
  digicafe serve
  digicafe serve --addr :9090`,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaultAddr(), "Listen address (PORT env sets the default)")
}

func defaultAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(newGenerator())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, serveAddr)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown requested", logger.F("cause", context.Cause(ctx)))
		return nil
	})

	return g.Wait()
}
