package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/aptel/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/aptel/internal/core/ports"
)

// Server handles HTTP connections for the metrics search API.
type Server struct {
	Addr          string
	SearchHandler *handlers.SearchHandler
	srv           *http.Server
}

// NewServer creates a new web server.
func NewServer(addr string, repo ports.MetricsRepository) *Server {
	return &Server{
		Addr:          addr,
		SearchHandler: handlers.NewSearchHandler(repo),
	}
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(s)

	// Instrument with OpenTelemetry
	// "aptel-search" is the name of the operation (span)
	instrumentedHandler := otelhttp.NewHandler(handler, "aptel-search")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown implementation
	go func() {
		<-ctx.Done()
		log.Println("Web Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web Server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
