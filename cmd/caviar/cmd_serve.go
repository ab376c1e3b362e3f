package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourusername/caviar-shop/internal/delivery/httpapi"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// serveCmd lead endpoint
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the lead endpoint (POST / relays a lead to the manager chat)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateServer(); err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		return serveHTTP(ctx, a)
	},
}

// serveHTTP ctx tugaguncha HTTP serverni ishlatish
func serveHTTP(ctx context.Context, a *app) error {
	if err := a.openStorage(); err != nil {
		return err
	}
	relay, err := a.relay()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(httpapi.NewLeadHandler(relay, a.logger.Named("http"))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("lead endpoint listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("lead endpoint stopping")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
