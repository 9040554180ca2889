package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/praveena-03/docinsight/internal/config"
	"github.com/praveena-03/docinsight/internal/monitor"
	"github.com/praveena-03/docinsight/internal/pipeline"
)

// Server is the HTTP API server for docinsight.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	stats        *monitor.ProcessingStats
	resources    *monitor.ResourceMonitor
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, stats *monitor.ProcessingStats, resources *monitor.ResourceMonitor, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		stats:        stats,
		resources:    resources,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/personas", s.handleListPersonas)

	// Processing endpoints. Auth is enforced only when a key is
	// configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/process-single", s.handleProcessSingle)
		r.Post("/process-collection", s.handleProcessCollection)
		r.Get("/task-status/{taskID}", s.handleTaskStatus)
		r.Get("/collections", s.handleListCollections)
		r.Get("/stats/processing", s.handleProcessingStats)
	})

	s.router = r
}
