package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ANGHOOO/godlife/internal/telemetry"
	"github.com/ANGHOOO/godlife/internal/txn"
)

// Server wires the chi router, middleware chain, and mounted routes (§6).
type Server struct {
	router *chi.Mux
	logger *slog.Logger
	pool   *pgxpool.Pool
	redis  *redis.Client
}

// Deps are the shared connections and logger the Server is built from.
// Domain packages' RegisterRoutes(r) calls take only the router; their
// handlers reach the database through the ambient transaction.
type Deps struct {
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Logger *slog.Logger
}

// New builds a Server with the standard middleware chain and health
// endpoints mounted. Callers mount domain routes with WithTransaction.
func New(cfg ServerConfig, deps Deps) *Server {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(Logger(deps.Logger))
	r.Use(Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Idempotency-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := deps.Pool.Ping(ctx); err != nil {
			Respond(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			Respond(w, http.StatusServiceUnavailable, map[string]string{"status": "redis unavailable"})
			return
		}
		Respond(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(telemetry.NewMetricsRegistry(), promhttp.HandlerOpts{}))

	return &Server{router: r, logger: deps.Logger, pool: deps.Pool, redis: deps.Redis}
}

// ServerConfig carries the subset of config the server needs at
// construction time, kept separate from internal/config to avoid an
// import cycle between httpserver and config.
type ServerConfig struct {
	CORSAllowedOrigins []string
}

// Router exposes the underlying chi.Mux, e.g. as the http.Server handler.
// Routes mounted directly on it run without the ambient-transaction
// middleware; use WithTransaction for those that need it.
func (s *Server) Router() chi.Router { return s.router }

// WithTransaction wraps a route group in the per-request transaction
// boundary (§5, C9).
func (s *Server) WithTransaction(fn func(r chi.Router)) {
	s.router.Group(func(r chi.Router) {
		r.Use(txn.Middleware(s.pool, s.logger))
		fn(r)
	})
}
