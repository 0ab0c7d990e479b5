package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jaylaelike/scintpipe/pkg/domain/model"
)

// CycleController exposes the scheduler operations the status server
// needs: reading loop state and requesting an immediate cycle.
type CycleController interface {
	Trigger() bool
	Status() model.CycleStatus
}

// config holds internal HTTP server configuration
type config struct {
	addr string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// Server represents the HTTP status server
type Server struct {
	*http.Server
}

// NewServer creates the status server
func NewServer(
	ctx context.Context,
	ctrl CycleController,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8211",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	statusHandler := NewStatusHandler(ctrl)
	router.Get("/status", statusHandler.HandleStatus)
	router.Post("/run", statusHandler.HandleRun)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
