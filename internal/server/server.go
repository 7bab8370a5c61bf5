// Package server wires the fiber application: routes, middleware, lifecycle.
package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"linklens/internal/config"
	httphandlers "linklens/internal/http"
)

// Server owns the fiber app and its lifecycle.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	logger *slog.Logger
}

// New builds the application with all routes mounted.
func New(cfg *config.Config, logger *slog.Logger, handler *httphandlers.Handler) *Server {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: cfg.IsTest(),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/health", handler.HealthAction)

	api := app.Group("/api/v1")
	api.Get("/dashboard", handler.DashboardAction)
	api.Get("/events", handler.EventsAction)
	api.Get("/export/csv", handler.CSVExportAction)
	api.Get("/export/image", handler.ImageExportAction)

	return &Server{app: app, cfg: cfg, logger: logger}
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until shutdown.
func (s *Server) Listen() error {
	s.logger.Info("starting server", slog.String("port", s.cfg.GetPort()))
	return s.app.Listen(":" + s.cfg.GetPort())
}

// Shutdown drains connections within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
