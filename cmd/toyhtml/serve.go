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

	"github.com/dpotapov/toyhtml"

	"github.com/scott-cotton/cli"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		cfg.Serve.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %v", cli.ErrUsage, args)
	}

	logger := cfg.logger()
	h := &toyhtml.Handler{
		MaxDepth:        cfg.MaxDepth,
		WarnUnknownTags: cfg.WarnUnknown,
		Strict:          cfg.Strict,
		MaxBodyBytes:    int64(cfg.MaxBodyBytes),
		DefaultFormat:   cfg.Format,
		Logger:          logger,
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           toyhtml.LoggerMiddleware(h, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logger.Info("Starting HTTP server", "address", "http://"+cfg.Addr)

	select {
	case err := <-errc:
		return fmt.Errorf("HTTP server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shut down HTTP server: %w", err)
	}
	return nil
}
