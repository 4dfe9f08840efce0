package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/cli/config"
	httpctrl "github.com/mita-sat/sstool/pkg/controller/http"
	"github.com/mita-sat/sstool/pkg/service/worker"
	"github.com/mita-sat/sstool/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var refreshInterval time.Duration
	var maxImportSize int64
	var repoCfg config.Repository
	var defsCfg config.Definitions
	var storageCfg config.Storage

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SSTOOL_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "definitions-refresh-interval",
			Usage:       "Interval of reloading capability definitions",
			Value:       5 * time.Minute,
			Category:    "Definitions",
			Sources:     cli.EnvVars("SSTOOL_DEFINITIONS_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
		&cli.Int64Flag{
			Name:        "max-import-size",
			Usage:       "Maximum size of an uploaded assessment file in bytes",
			Value:       httpctrl.DefaultMaxImportSize,
			Sources:     cli.EnvVars("SSTOOL_MAX_IMPORT_SIZE"),
			Destination: &maxImportSize,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, defsCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			b, err := openBackend(ctx, &repoCfg, &storageCfg)
			if err != nil {
				return err
			}
			defer b.Close(ctx)

			if storageCfg.IsConfigured() {
				logger.Info("Report upload enabled", "storage", storageCfg)
			}

			// The worker is the definitions source of every request so
			// edited files take effect without a restart
			defsWorker := worker.NewDefinitionRefreshWorker(defsCfg.Configure(), refreshInterval)
			if err := defsWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start definitions refresh worker")
			}
			defer defsWorker.Stop()

			uc := b.useCases(defsWorker)

			httpHandler, err := httpctrl.New(uc,
				httpctrl.WithMaxImportSize(maxImportSize),
				httpctrl.WithVersion(c.Root().Version),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr, "repository", repoCfg)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				defsWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
