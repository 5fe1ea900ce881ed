package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"market-finder/logging"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP front-end and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			cfg := a.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}
			logger := logging.Component(a.Logger, "server")

			handler, stop, err := a.Handler()
			if err != nil {
				return err
			}
			defer stop()

			server := &http.Server{
				Addr:         cfg.Addr,
				Handler:      handler,
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
				IdleTimeout:  cfg.IdleTimeout,
			}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", cfg.Addr).Msg("listening")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			quit, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			select {
			case err := <-serverErr:
				logger.Error().Err(err).Msg("server failed")
				return err
			case <-quit.Done():
				logger.Info().Msg("shutting down")
			}

			ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancelShutdown()

			if err := server.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("shutdown")
				return err
			}

			logger.Info().Msg("server exited")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
