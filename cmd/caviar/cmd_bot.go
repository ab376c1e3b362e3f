package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// botCmd Telegram do'kon boti
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram shop bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateBot(); err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		return runBot(ctx, a)
	},
}

// runCmd endpoint va bot bitta jarayonda
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lead endpoint and the shop bot together",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := errors.Join(cfg.ValidateServer(), cfg.ValidateBot()); err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()
		// Umumiy resurslar goroutinelardan oldin ochiladi
		if err := a.openStorage(); err != nil {
			return err
		}
		if _, err := a.botAPI(); err != nil {
			return err
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error { return serveHTTP(ctx, a) })
		g.Go(func() error { return runBot(ctx, a) })
		return g.Wait()
	},
}

func runBot(ctx context.Context, a *app) error {
	if err := a.openStorage(); err != nil {
		return err
	}
	handler, err := a.botHandler()
	if err != nil {
		return err
	}

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
