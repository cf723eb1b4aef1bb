// Package main runs the pricing-game analysis server: the JSON/WebSocket
// API on one address and Prometheus metrics on another.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"rideshare-pricing-lab/internal/api"
	"rideshare-pricing-lab/internal/config"
	"rideshare-pricing-lab/internal/observability"
)

func main() {
	// Load .env if present; environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Flags override env for one-off runs.
	listenAddr := flag.String("listen-addr", cfg.ListenAddr, "HTTP API listen address")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "Prometheus metrics listen address")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags)

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer, "")
	server := api.NewServer(logger, metrics)

	apiSrv := &http.Server{
		Addr:    *listenAddr,
		Handler: server.Router(),
	}
	metricsSrv := &http.Server{
		Addr:    *metricsAddr,
		Handler: observability.Handler(),
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Printf("API listening on %s", *listenAddr)
		errCh <- apiSrv.ListenAndServe()
	}()
	go func() {
		logger.Printf("metrics listening on %s", *metricsAddr)
		errCh <- metricsSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("received %s, shutting down", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("server error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := apiSrv.Shutdown(ctx); err != nil {
		logger.Printf("API shutdown: %v", err)
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		logger.Printf("metrics shutdown: %v", err)
	}
	logger.Println("stopped")
}
