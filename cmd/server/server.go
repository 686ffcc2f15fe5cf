package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"equipment-tracker/internal/config"
	"equipment-tracker/internal/logger"
)

var startedAt = time.Now()

// serve runs the HTTP server until ctx is cancelled, then gives in-flight
// requests the configured shutdown timeout to finish. onShutdown hooks run
// when shutdown starts; long-lived streams use them to end their requests.
func serve(ctx context.Context, cfg *config.Config, handler http.Handler, onShutdown ...func()) error {
	ln, err := net.Listen("tcp", cfg.GetServerAddress())
	if err != nil {
		return err
	}
	return serveListener(ctx, cfg, ln, handler, onShutdown...)
}

func serveListener(ctx context.Context, cfg *config.Config, ln net.Listener, handler http.Handler, onShutdown ...func()) error {
	srv := &http.Server{
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}
	for _, f := range onShutdown {
		srv.RegisterOnShutdown(f)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server", "address", ln.Addr().String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	logger.Info("HTTP server listening", "address", ln.Addr().String())
	err := srv.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return err
	}
	logger.Info("Server stopped", "address", ln.Addr().String())
	return nil
}
