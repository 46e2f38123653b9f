package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"proofpack/internal/platform/config"
	"proofpack/internal/platform/httpserver"
	"proofpack/internal/platform/logger"
	"proofpack/internal/platform/metrics"
	"proofpack/pkg/platform/httputil"
	"proofpack/pkg/platform/middleware/metadata"
	request "proofpack/pkg/platform/middleware/request"
	"proofpack/pkg/platform/middleware/requesttime"
)

const shutdownTimeout = 10 * time.Second

// main wires infrastructure, services and routes, then keeps the server
// lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(nil)

	infra, err := openInfra(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialise infrastructure", "error", err)
		os.Exit(1)
	}
	defer infra.Close()

	app := buildApp(cfg, log, m, infra)
	app.dispatcher.Start(ctx)

	router := newRouter(log, m, infra, app)

	srv := httpserver.New(cfg.Addr, router, log)
	log.Info("starting proofpack",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"postgres", infra.db != nil,
		"redis", infra.redis != nil,
		"kafka", infra.kafka != nil,
		"azure_blob", infra.azure != nil,
	)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			log.Error("server error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	app.dispatcher.Close(shutdownCtx)
	log.Info("proofpack stopped")
}

func newRouter(log *slog.Logger, m *metrics.Metrics, i *infra, a *app) chi.Router {
	router := chi.NewRouter()
	router.Use(request.RequestID)
	router.Use(request.Recovery(log))
	router.Use(request.Logger(log))
	router.Use(request.Latency(m.ObserveRequest))
	router.Use(metadata.ClientMetadata)
	router.Use(requesttime.Middleware)

	router.Get("/health", i.healthHandler())
	router.Handle("/metrics", metrics.Handler())
	for _, h := range a.handlers {
		h.Register(router)
	}
	return router
}

// healthHandler reports reachability of every configured backend.
func (i *infra) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		check := func(name string, fn func(context.Context) error) {
			if err := fn(ctx); err != nil {
				checks[name] = "unavailable"
				healthy = false
				i.logger.WarnContext(ctx, "health check failed", "backend", name, "error", err)
				return
			}
			checks[name] = "ok"
		}
		if i.db != nil {
			check("postgres", i.db.PingContext)
		}
		if i.redis != nil {
			check("redis", i.redis.Health)
		}
		if i.kafka != nil {
			check("kafka", i.kafka.Ping)
		}

		status := http.StatusOK
		body := map[string]any{"status": "ok", "checks": checks}
		if !healthy {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
