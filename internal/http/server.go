// Package http assembles the gin router, middleware and servers of the recipe API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/shepatra/internal/metrics"
	recipeHTTP "github.com/allisson/shepatra/internal/recipe/http"
)

// ReadinessCheck reports whether the recipe store can serve requests.
type ReadinessCheck func(ctx context.Context) error

// ServerOptions holds the optional parts of the API server.
type ServerOptions struct {
	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	// MetricsProvider enables HTTP metrics when set.
	MetricsProvider  *metrics.Provider
	MetricsNamespace string

	// Readiness backs the /ready endpoint. A nil check always reports ready.
	Readiness ReadinessCheck
}

// Server represents the recipe API HTTP server.
type Server struct {
	listener
	router    *gin.Engine
	logger    *slog.Logger
	readiness ReadinessCheck
	stop      context.CancelFunc
}

// NewServer creates the API server and registers every route.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
	recipeHandler *recipeHTTP.RecipeHandler,
	opts ServerOptions,
) *Server {
	// Background work owned by the middleware stops on Shutdown.
	ctx, stop := context.WithCancel(context.Background())

	s := &Server{
		router:    gin.New(),
		logger:    logger,
		readiness: opts.Readiness,
		stop:      stop,
	}
	s.setupRouter(ctx, recipeHandler, opts)

	s.listener = newListener("api", host, port, s.router, logger)
	return s
}

func (s *Server) setupRouter(ctx context.Context, recipeHandler *recipeHTTP.RecipeHandler, opts ServerOptions) {
	s.router.Use(gin.Recovery())
	s.router.Use(requestid.New(requestid.WithGenerator(newRequestID)))
	s.router.Use(CustomLoggerMiddleware(s.logger))

	if cors := createCORSMiddleware(opts.CORSEnabled, opts.CORSAllowOrigins, s.logger); cors != nil {
		s.router.Use(cors)
	}

	if opts.MetricsProvider != nil {
		s.router.Use(metrics.HTTPMetricsMiddleware(opts.MetricsProvider.MeterProvider(), opts.MetricsNamespace))
	}

	s.router.GET("/health", s.healthHandler)
	s.router.GET("/ready", s.readinessHandler)

	v1 := s.router.Group("/v1")
	v1.GET("/algorithms", recipeHandler.ListAlgorithmsHandler)

	recipes := v1.Group("/recipes")
	recipes.GET("", recipeHandler.ListHandler)
	recipes.POST("", recipeHandler.CreateHandler)
	recipes.GET("/:name", recipeHandler.GetHandler)
	recipes.PUT("/:name", recipeHandler.ReplaceHandler)
	recipes.DELETE("/:name", recipeHandler.DeleteHandler)

	hashChain := []gin.HandlerFunc{}
	if opts.RateLimitEnabled {
		hashChain = append(hashChain,
			RateLimitMiddleware(ctx, opts.RateLimitRequestsPerSec, opts.RateLimitBurst, s.logger))
	}
	hashChain = append(hashChain, recipeHandler.HashHandler)
	recipes.POST("/:name/hash", hashChain...)
}

// newRequestID generates time-ordered request IDs, falling back to random ones.
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.readiness != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.readiness(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start blocks until the server is shut down.
func (s *Server) Start(_ context.Context) error {
	return s.serve()
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop()
	return s.shutdown(ctx)
}
