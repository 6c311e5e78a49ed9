package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/taskapi/internal/logger"
	"github.com/existflow/taskapi/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr string
		seed bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API on the configured address.

Examples:
  taskapi serve
  taskapi serve --addr :9000 --seed=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				opts.cfg.Addr = addr
			}
			if cmd.Flags().Changed("seed") {
				opts.cfg.Seed = seed
			}
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().BoolVar(&seed, "seed", true, "Insert demo data when the store is empty")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions) error {
	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Error closing database", logger.F("error", err))
		}
	}()

	if opts.cfg.Seed {
		if _, err := seedStore(ctx, store); err != nil {
			return err
		}
	}

	srv := server.New(store, server.Options{ExposeErrors: opts.cfg.ExposeErrors})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("taskapi server starting", logger.F("addr", opts.cfg.Addr))
		errCh <- srv.Start(opts.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
