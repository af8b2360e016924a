package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/config"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/explore"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/metrics"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Options carries the server's collaborators.
type Options struct {
	// Logger receives request and lifecycle logs. Default discards.
	Logger *slog.Logger
	// Registry backs /metrics and the simulation collectors. Default is a
	// fresh registry per server.
	Registry *prometheus.Registry
	// Clock is handed to every controller. Default explore.SystemClock.
	Clock explore.Clock
}

// Option configures a Server.
type Option func(*Options)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(o *Options) {
		if r != nil {
			o.Registry = r
		}
	}
}

// WithClock sets the clock handed to controllers.
func WithClock(c explore.Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	}
}

// Server is the HTTP surface over a set of simulations.
type Server struct {
	cfg     config.Config
	opts    Options
	log     *slog.Logger
	sims    *store
	metrics *metrics.Collector
	engine  *gin.Engine
}

// New builds a Server from cfg. The gin mode is taken from cfg.Server.GinMode.
func New(cfg config.Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:  explore.SystemClock,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Registry == nil {
		o.Registry = prometheus.NewRegistry()
	}
	col, err := metrics.New(o.Registry)
	if err != nil {
		return nil, err
	}

	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		cfg:     cfg,
		opts:    o,
		log:     o.Logger,
		sims:    newStore(),
		metrics: col,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLog())
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	v1 := s.engine.Group("/v1")
	sims := v1.Group("/sims")
	{
		sims.POST("", s.create)
		sims.GET("/:id", s.withSession(s.snapshot))
		sims.POST("/:id/place", s.withSession(s.place))
		sims.POST("/:id/clear", s.withSession(s.clear))
		sims.POST("/:id/begin", s.withSession(s.begin))
		sims.POST("/:id/reset", s.withSession(s.reset))
		sims.POST("/:id/tick", s.withSession(s.tick))
		sims.DELETE("/:id", s.remove)
	}
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{})))
	s.engine.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "sims": s.sims.len()})
	})
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on cfg.Server.Addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	return nil
}

// requestLog logs one line per request at Debug, or Warn for 5xx.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		level := slog.LevelDebug
		if ctx.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		s.log.Log(ctx.Request.Context(), level, "request",
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.FullPath()),
			slog.Int("status", ctx.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
