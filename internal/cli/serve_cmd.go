package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// sessionSweepInterval is how often expired login sessions are purged
// while the server runs.
const sessionSweepInterval = time.Hour

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           app.Server.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go app.sweepSessions(ctx)

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("http server listening", "addr", addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			app.Logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides CODEFORGE_LISTEN_ADDR)")
	return cmd
}

// sweepSessions periodically removes expired login sessions until ctx is
// cancelled.
func (app *App) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.Sessions.DeleteExpired(ctx)
			if err != nil {
				app.Logger.Error("purging expired sessions", "error", err)
				continue
			}
			if n > 0 {
				app.Logger.Info("purged expired sessions", "count", n)
			}
		}
	}
}
