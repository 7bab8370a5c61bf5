// Package http exposes the pipeline over a JSON API: the assembled
// dashboard, the filtered events table, export artifacts, and health.
package http

import (
	"context"
	"log/slog"

	"linklens/internal/config"
	"linklens/internal/geo"
	"linklens/internal/source"
)

// SnapshotFetcher supplies the atomic input snapshot. Satisfied by
// source.Client; tests substitute a stub.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (*source.Snapshot, error)
}

// Handler carries the dependencies shared by all endpoints.
type Handler struct {
	cfg      *config.Config
	logger   *slog.Logger
	fetcher  SnapshotFetcher
	resolver *geo.Resolver
}

// NewHandler wires the endpoint dependencies together.
func NewHandler(cfg *config.Config, logger *slog.Logger, fetcher SnapshotFetcher, resolver *geo.Resolver) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		fetcher:  fetcher,
		resolver: resolver,
	}
}
