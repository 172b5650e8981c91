package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vladimiradmaev/tech-breaks/internal/interfaces"
	"github.com/vladimiradmaev/tech-breaks/internal/metrics"
)

// Server is the HTTP front-end of the prediction service.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wires routes and middleware. m may be nil to disable /metrics.
func NewServer(addr string, predictor interfaces.PredictionServiceInterface, m *metrics.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	NewHandler(predictor, logger).RegisterRoutes(mux, m)

	var handler http.Handler = mux
	handler = LoggingMiddleware(logger, m)(handler)
	handler = CORSMiddleware(handler)
	handler = RecoveryMiddleware(logger)(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
