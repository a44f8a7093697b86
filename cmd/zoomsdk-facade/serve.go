package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/qieqieplus/zoomsdk-facade/pkg/events"
	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
	"github.com/qieqieplus/zoomsdk-facade/pkg/metrics"
	"github.com/qieqieplus/zoomsdk-facade/pkg/server"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(opts *options) *cobra.Command {
	var autoInit bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP/WebSocket control API",
		Long:  "serve loads the native engine, optionally initializes it from the engine config file, and serves the control API until SIGINT or SIGTERM.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("auto-init") {
				opts.cfg.SDK.AutoInit = autoInit
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&autoInit, "auto-init", false, "Initialize the engine on startup (overrides ZOOM_AUTO_INIT)")

	return cmd
}

// runServer serves until ctx is done, then tears the engine down before the
// HTTP server.
func runServer(ctx context.Context, opts *options) error {
	cfg := opts.cfg
	log.Info("Starting server...")

	// Create components
	bus := events.NewBus()
	collectors := metrics.New()
	collectors.WatchBus(bus)

	facade, err := opts.facade(
		zoomsdk.WithObserver(events.NewObserver(bus)),
		zoomsdk.WithObserver(collectors.Observer()),
	)
	if err != nil {
		return fmt.Errorf("load native engine: %w", err)
	}
	log.Infof("Native engine %s loaded from %s", facade.Version(), facade.ModulePath())

	if cfg.SDK.AutoInit || cfg.SDK.EngineConfigFile != "" {
		if err := autoInitialize(opts, facade); err != nil {
			return err
		}
	}

	wsServer := server.NewWebSocketServer(bus, facade, cfg)
	httpServer := server.NewHTTPServer(facade, wsServer, collectors)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpServer,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		log.Errorf("HTTP server failed: %v", err)
		teardown(facade)
		bus.Shutdown()
		return err
	case <-ctx.Done():
	}

	shutdown(srv, facade, bus)
	return nil
}

// autoInitialize runs native init from the configured options. A bad options
// file is an error; a native failure is logged and left for the API to retry.
func autoInitialize(opts *options, facade *zoomsdk.Facade) error {
	initOpts, err := opts.initOptions()
	if err != nil {
		return err
	}
	if status := facade.Initialize(initOpts); !status.IsSuccess() {
		log.Errorf("Auto-init failed: %s", status)
		return nil
	}
	log.Info("Auto-init complete")
	return nil
}

func teardown(facade *zoomsdk.Facade) {
	if !facade.IsInitialized() {
		return
	}
	if status := facade.Teardown(); !status.IsSuccess() {
		log.Errorf("Error during engine teardown: %s", status)
	} else {
		log.Info("Native engine torn down successfully")
	}
}

func shutdown(srv *http.Server, facade *zoomsdk.Facade, bus *events.Bus) {
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Tear the engine down first so subscribers see the final event
	teardown(facade)

	// Hijacked WebSocket connections are not closed by srv.Shutdown
	bus.Shutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Error during HTTP server shutdown: %v", err)
	} else {
		log.Info("HTTP server shut down successfully")
	}

	log.Info("Server shutdown complete.")
}
