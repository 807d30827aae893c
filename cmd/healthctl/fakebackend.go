package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AmzurATG/heatlhcare-demo/internal/fakebackend"
	"github.com/AmzurATG/heatlhcare-demo/internal/logger"
)

func newFakeBackendCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "fake-backend",
		Short: "Serve an in-memory backend for local demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			b := fakebackend.New(logger.New("healthctl-fake-backend"))
			srv := &http.Server{
				Addr:              addr,
				Handler:           b.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("fake backend listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "Listen address")
	return cmd
}
