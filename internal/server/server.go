// Package server exposes the layout solvers over HTTP.
//
// Routes:
//
//	POST /v1/solve    solve one problem (engine from "algo", default auto)
//	POST /v1/compare  run both engines and report the optimality gap
//	GET  /health      liveness
//	GET  /metrics     Prometheus metrics
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/layoutopt/internal/config"
	"golang.org/x/sync/errgroup"
)

// shutdownGrace bounds how long in-flight solves may finish after shutdown starts.
const shutdownGrace = 10 * time.Second

// Server serves HTTP requests for the layout solvers.
type Server struct {
	config  config.Config
	logger  *slog.Logger
	limiter *RateLimiter
	router  *gin.Engine
}

// New creates a server and sets up routing. Call Close to stop the rate
// limiter's cleanup goroutine when the server is not started with Run.
func New(cfg config.Config, logger *slog.Logger) *Server {
	server := &Server{
		config:  cfg,
		logger:  logger,
		limiter: NewRateLimiter(RateLimiterConfig{Limit: cfg.RateLimit, Burst: cfg.RateBurst, CleanupInterval: 10 * time.Minute}),
	}
	server.setupRouter()
	return server
}

func (server *Server) setupRouter() {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware(server.logger))
	router.Use(PrometheusMiddleware())

	router.GET("/metrics", MetricsHandler())
	router.GET("/health", server.healthCheck)

	v1 := router.Group("/v1")
	v1.Use(server.limiter.Middleware())
	v1.Use(BodyLimitMiddleware(server.config.MaxBodyBytes))
	v1.POST("/solve", server.solve)
	v1.POST("/compare", server.compare)

	server.router = router
}

// Handler returns the router for use with http.Server or httptest.
func (server *Server) Handler() http.Handler {
	return server.router
}

// Close stops background work owned by the server.
func (server *Server) Close() {
	server.limiter.Stop()
}

// Run serves on address until ctx is cancelled, then shuts down gracefully.
func (server *Server) Run(ctx context.Context, address string) error {
	defer server.Close()

	httpServer := &http.Server{
		Addr:              address,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		server.logger.Info("start HTTP server", "address", address)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.logger.Error("HTTP server failed to serve", "error", err)
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		server.logger.Info("graceful shutdown HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			server.logger.Error("HTTP server forced to shutdown", "error", err)
			return err
		}
		server.logger.Info("HTTP server stopped")
		return nil
	})

	return group.Wait()
}

func (server *Server) healthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "layoutopt",
	})
}
