// main.go - HTTP server application
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linklens/internal/config"
	"linklens/internal/geo"
	internalhttp "linklens/internal/http"
	"linklens/internal/logging"
	"linklens/internal/server"
	"linklens/internal/source"
)

const defaultShutdownTimeout = 30 * time.Second

func main() {
	cfg := config.GetConfig()
	logger := logging.NewLogger(cfg)

	resolver := geo.NewResolver(cfg.GeoDBPath, logger)
	defer resolver.Close()

	client := source.NewClient(cfg, logger)
	handler := internalhttp.NewHandler(cfg, logger, client, resolver)
	srv := server.New(cfg, logger, handler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	log.Println("Initiating graceful shutdown...")
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
		os.Exit(1)
	}
	log.Println("Server shutdown complete")
}
