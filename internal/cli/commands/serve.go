package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benchtop-io/benchtop/internal/cli/config"
	"github.com/benchtop-io/benchtop/internal/web/server"
)

var serveAddress string

// newServeCommand creates the 'serve' command
func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry introspection API",
		Long: `Load the catalog and serve a read-only HTTP API over the resulting
registry: model listings, per-model detail, generated artifacts, and the
sample/measurement discovery views.`,
		Example: `  # Serve on the default address
  benchtop serve

  # Serve on a specific port
  benchtop serve --address :9090`,
		RunE: runServeCommand,
	}

	cmd.Flags().StringVar(&serveAddress, "address", "", "Listen address (default from benchtop.yml or :8080)")
	return cmd
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	address := serveAddress
	if address == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		address = cfg.Server.Address
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	srvConfig := server.DefaultConfig()
	srvConfig.Address = address
	srv := server.New(reg, logger, srvConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
