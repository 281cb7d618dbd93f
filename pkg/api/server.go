// Package api serves recordcast's task status and Prometheus metrics
//
// @title           recordcast status API
// @version         1.0.0
// @description     Read-only view of running send and listen tasks.
// @host            localhost:9142
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the HTTP routes. Metrics are served from gatherer. A
// server without a tracker serves health and metrics only.
func NewRouter(server *Server, gatherer prometheus.Gatherer) http.Handler {
	metrics := server.metrics
	r := chi.NewRouter()

	if server.config.LogRequests {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
			NoColor: true,
		}))
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(server.config.APIKey))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// task routes only exist when this process runs tasks
		if server.tracker != nil {
			r.Get("/tasks", metrics.InstrumentHandler("GET", "/api/v1/tasks", server.handleListTasks))
			r.Get("/tasks/{id}", metrics.InstrumentHandler("GET", "/api/v1/tasks/{id}", server.handleGetTask))
			r.Delete("/tasks/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/tasks/{id}", server.handleStopTask))
		}
	})

	return r
}

// StartServer serves the status API on config.Addr until ctx is cancelled.
// ready, if set, is called with the bound address.
func StartServer(ctx context.Context, server *Server, gatherer prometheus.Gatherer, ready func(addr string)) error {
	ln, err := net.Listen("tcp", server.config.Addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           NewRouter(server, gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	addr := ln.Addr().String()
	slog.Info("status server listening", "addr", addr, "metrics", "http://"+addr+"/metrics")
	if ready != nil {
		ready(addr)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
