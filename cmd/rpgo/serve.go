package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpgo/retirement-optimizer/internal/api"
	"github.com/rpgo/retirement-optimizer/internal/interactive"
	"github.com/spf13/cobra"
)

func (a *app) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run the calculators from a numbered menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return interactive.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), a.engine).Run(cmd.Context())
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	var (
		addr      string
		rateLimit int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, addr, rateLimit)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 60, "requests per client per minute")
	return cmd
}

// serve runs the API until ctx is cancelled, then drains in-flight requests.
func (a *app) serve(ctx context.Context, addr string, rateLimit int) error {
	limiter := api.NewRateLimiter(rateLimit, time.Minute)
	defer limiter.Stop()

	handler := api.NewHandler(a.engine, a.logger)
	server := &http.Server{
		Addr:         addr,
		Handler:      api.RateLimitMiddleware(limiter, handler.Routes()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof("API listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		a.logger.Infof("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.logger.Infof("server exited")
	return nil
}
