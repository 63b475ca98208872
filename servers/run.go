package servers

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// RunWithGracefulShutdown serves until SIGINT/SIGTERM, then shuts down gracefully.
// - server: the http.Server to run
// - appName: for logging
// - cleanup: optional cleanup function to release resources
// - timeout: max duration for shutdown
func RunWithGracefulShutdown(server *http.Server, appName string, cleanup func(), timeout time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, server, listener, appName, cleanup, timeout)
}

// Serve runs server on listener until ctx is done, then runs cleanup and
// shuts the server down, letting in-flight requests finish within timeout.
func Serve(ctx context.Context, server *http.Server, listener net.Listener, appName string, cleanup func(), timeout time.Duration) error {
	// Channel to capture server errors
	serverErrChan := make(chan error, 1)

	go func() {
		log.Printf("[INFO] %q listening on %s ...", appName, listener.Addr())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		} else {
			serverErrChan <- nil
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("[INFO] shutting down the app [%s] ...", appName)
	case err := <-serverErrChan:
		// server died on its own
		if cleanup != nil {
			cleanup()
		}
		return err
	}

	if cleanup != nil {
		cleanup()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	// Stop accepting new requests immediately; requests in flight get until the timeout
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] server shutdown failed: %v", err)
	}

	if err := <-serverErrChan; err != nil {
		return err
	}

	log.Printf("[INFO] %q shutdown complete", appName)
	return nil
}
