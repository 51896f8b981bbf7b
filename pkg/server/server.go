package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/searchlite/searchlite/pkg/api"
	"github.com/searchlite/searchlite/pkg/registry"
)

// Server wires the search API onto an HTTP router.
type Server struct {
	router   *mux.Router
	registry *registry.Registry
	logger   *zap.Logger
}

// NewServer creates a new instance of Server around a built registry.
func NewServer(reg *registry.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:   mux.NewRouter(),
		registry: reg,
		logger:   logger,
	}

	api.NewHandler(reg, logger).RegisterRoutes(s.router)

	s.router.Use(s.requestLoggerMiddleware)
	s.router.Use(api.MetricsMiddleware)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Warn("no route found",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		http.NotFound(w, r)
	})

	return s
}

// requestLoggerMiddleware logs the method, URL path, and duration for each request.
func (s *Server) requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}
