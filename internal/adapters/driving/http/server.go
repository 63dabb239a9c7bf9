package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docteca/docteca-core/internal/core/ports/driven"
	"github.com/docteca/docteca-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	ingestService   driving.IngestService
	searchService   driving.SearchService
	documentService driving.DocumentService
	taskService     driving.TaskService

	// Infrastructure
	taskQueue driven.TaskQueue
	db        Pinger // PostgreSQL health check
	redis     Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string

	// APISecret enables bearer token authentication when set.
	APISecret string

	// AllowedOrigins for CORS. Empty disables CORS handling.
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	ingestService driving.IngestService,
	searchService driving.SearchService,
	documentService driving.DocumentService,
	taskService driving.TaskService,
	taskQueue driven.TaskQueue,
	db Pinger,
	redis Pinger, // can be nil
) *Server {
	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		ingestService:   ingestService,
		searchService:   searchService,
		documentService: documentService,
		taskService:     taskService,
		taskQueue:       taskQueue,
		db:              db,
		redis:           redis,
	}

	s.setupRoutes(cfg)

	var handler http.Handler = s.router
	if len(cfg.AllowedOrigins) > 0 {
		handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	}
	handler = NewLoggingMiddleware().Handler(handler)
	handler = NewRecoveryMiddleware().Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config) {
	auth := NewAuthMiddleware(cfg.APISecret)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Ingestion
	s.router.Handle("POST /upload/",
		auth.Authenticate(http.HandlerFunc(s.handleUpload)))

	// Search
	s.router.Handle("GET /search/",
		auth.Authenticate(http.HandlerFunc(s.handleSearch)))

	// Documents
	s.router.Handle("GET /documents/",
		auth.Authenticate(http.HandlerFunc(s.handleListDocuments)))
	s.router.Handle("GET /documents/{id}",
		auth.Authenticate(http.HandlerFunc(s.handleGetDocument)))
	s.router.Handle("DELETE /documents/{id}",
		auth.Authenticate(http.HandlerFunc(s.handleDeleteDocument)))

	// Background ingestion tasks
	s.router.Handle("POST /tasks/",
		auth.Authenticate(http.HandlerFunc(s.handleEnqueueTasks)))
	s.router.Handle("GET /tasks/{id}",
		auth.Authenticate(http.HandlerFunc(s.handleGetTask)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the composed handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
