package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/vncsmyrnk/jarvis/internal/logging"
)

const ShutdownTimeout = 30 * time.Second

// Run serves handler on ln until ctx is cancelled, then drains in-flight
// requests for up to ShutdownTimeout.
func Run(ctx context.Context, ln net.Listener, handler http.Handler, log logging.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "gracefully shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// ListenAndRun binds addr and calls Run.
func ListenAndRun(ctx context.Context, addr string, handler http.Handler, log logging.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Run(ctx, ln, handler, log)
}
